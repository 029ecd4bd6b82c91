package docgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/vidoc/vidoc-api/internal/generation"
)

// Service stages uploads and drives the generator over them.
type Service struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewService creates a new Service with the provided dependencies.
func NewService(generator generation.Generator, logger *slog.Logger) (*Service, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Service{generator: generator, logger: logger}, nil
}

// GenerateFromUpload copies the uploaded stream to a uniquely named temporary
// file, detects its MIME type and size, and asks the generator for a
// documentation page. The temporary file lives at most for the duration of
// this call and is removed on every exit path.
func (s *Service) GenerateFromUpload(ctx context.Context, file io.Reader, filename string) (string, error) {
	path, size, err := s.stage(file)
	if err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}
	defer s.removeStaged(ctx, path)

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to detect MIME type: %w", err)
	}

	src := generation.VideoSource{
		Path:        path,
		DisplayName: filename,
		MIMEType:    mtype.String(),
		SizeBytes:   size,
	}

	s.logger.InfoContext(ctx, "generating documentation from upload",
		"display_name", src.DisplayName,
		"mime_type", src.MIMEType,
		"size_bytes", src.SizeBytes)

	return s.generator.DocumentFromVideo(ctx, src)
}

// stage copies the upload into a uniquely named file under the system temp
// directory. On any staging failure the partial file is removed here, since
// the caller only installs its cleanup once staging has succeeded.
func (s *Service) stage(file io.Reader) (string, int64, error) {
	path := filepath.Join(os.TempDir(), "vidoc-upload-"+uuid.NewString())

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", 0, err
	}

	size, copyErr := io.Copy(out, file)
	closeErr := out.Close()

	if copyErr != nil {
		_ = os.Remove(path)
		return "", 0, copyErr
	}
	if closeErr != nil {
		_ = os.Remove(path)
		return "", 0, closeErr
	}

	return path, size, nil
}

// removeStaged deletes the staging file. Removal failures are logged, never
// surfaced: the request outcome is already decided by the time cleanup runs.
func (s *Service) removeStaged(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.ErrorContext(ctx, "failed to remove staged upload",
			"error", err,
			"path", path)
	}
}
