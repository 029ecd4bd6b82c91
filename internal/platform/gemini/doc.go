// Package gemini provides an implementation of the generation.Generator
// interface against the Google generative language REST API.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the application to the external vendor service. It drives the
// three-step resumable upload protocol (initiate, stream-and-finalize, poll
// processing state) followed by a single content-generation call, and
// translates wire-level failures into the application's generation errors.
//
// Key components:
//
//  1. Client:
//     - Implements the generation.Generator interface
//     - Creates one retrying HTTP session per upload-and-generate sequence
//     - Bounds every remote call with a per-call timeout
//
//  2. Upload protocol:
//     - Initiation returns a continuation URL in a response header; its
//     absence is fatal for the request
//     - The data upload streams the staged file in a single finalizing call
//     and must return a file URI
//     - Processing state is polled at a fixed interval with a hard attempt
//     cap; the sleep between polls is injectable for deterministic tests
//
//  3. Generation:
//     - Sends the remote file reference plus a fixed documentation prompt
//     - Concatenates the textual parts of the first response candidate
//     - Degrades parse failures and empty candidates to placeholder texts
//     instead of failing the request
package gemini
