// Package generation provides the interface and error vocabulary for turning
// an uploaded video into a generated documentation page. It abstracts the
// details of the external AI service integration (Gemini), allowing the
// application to request documentation for a locally staged video without
// coupling to vendor wire formats or the upload protocol.
package generation
