// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and the
// internal documentation service, translating HTTP concerns to business
// operations and internal errors to the fixed client-facing envelopes.
package api
