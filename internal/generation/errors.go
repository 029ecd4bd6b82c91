package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrUploadFailed is returned when any step of the remote upload protocol
	// fails: a failed HTTP call, a non-success status, a missing continuation
	// URL, or a missing file URI in the upload response.
	ErrUploadFailed = errors.New("video upload failed")

	// ErrProcessingFailed is returned when the vendor reports the FAILED
	// processing state for an uploaded file.
	ErrProcessingFailed = errors.New("file processing failed")

	// ErrProcessingTimeout is returned when the uploaded file reaches neither
	// ACTIVE nor FAILED within the polling attempt budget.
	ErrProcessingTimeout = errors.New("file processing timed out")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// Placeholder texts substituted for the documentation text when the
// generation response carries no usable candidates or cannot be decoded.
// Substitution is deliberate: problems parsing the generation response never
// fail the request.
const (
	NoContentPlaceholder    = "No content generated"
	ParseFailurePlaceholder = "Failed to parse generated content"
)
