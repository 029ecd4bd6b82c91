package generation

import "context"

// VideoSource describes a video staged on local disk and awaiting upload:
// where the bytes live, what the client called the file, and what the bytes
// look like.
type VideoSource struct {
	// Path is the location of the staged file on local disk.
	Path string

	// DisplayName is the filename the client declared for the upload.
	DisplayName string

	// MIMEType is the detected media type of the staged bytes.
	MIMEType string

	// SizeBytes is the staged file's length in bytes.
	SizeBytes int64
}

// Generator defines the interface for producing a documentation page from an
// uploaded video. This interface serves as a boundary between the application
// core and external AI/LLM services, following the hexagonal architecture
// pattern.
type Generator interface {
	// DocumentFromVideo uploads the staged video to the vendor, waits for
	// remote processing to complete, and requests a documentation generation
	// pass over it.
	//
	// Returns the generated markdown text, or an error wrapping one of the
	// sentinel errors in errors.go when the upload or processing fails.
	// Failures parsing the generation response are reported through the
	// placeholder texts, not as errors.
	DocumentFromVideo(ctx context.Context, src VideoSource) (string, error)
}
