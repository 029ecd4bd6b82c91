package api

import (
	"errors"

	"github.com/vidoc/vidoc-api/internal/generation"
)

// Fixed client-facing messages. Tests and browser clients match on these
// exact strings, so they are part of the endpoint contract.
const (
	MsgNoVideoPart     = "No video file part"
	MsgNoSelectedFile  = "No selected file"
	MsgUpstreamFailure = "Upload or generation failed"
	MsgInternalError   = "Internal server error"
)

// GetSafeErrorMessage returns the error category for a failed generation
// request. Upstream protocol failures (failed calls, missing response fields,
// remote processing failure or timeout) map to the upstream category;
// anything unexpected is reported as an internal server error. This prevents
// leaking internal error types to clients.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, generation.ErrUploadFailed),
		errors.Is(err, generation.ErrProcessingFailed),
		errors.Is(err, generation.ErrProcessingTimeout):
		return MsgUpstreamFailure
	default:
		return MsgInternalError
	}
}
