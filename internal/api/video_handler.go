package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/vidoc/vidoc-api/internal/api/shared"
)

// videoFormField is the multipart field the upload must arrive under.
const videoFormField = "video"

// DocService produces documentation text from an uploaded video stream.
type DocService interface {
	GenerateFromUpload(ctx context.Context, file io.Reader, filename string) (string, error)
}

// UploadVideoResponse is the success payload of POST /upload-video.
type UploadVideoResponse struct {
	GeneratedDocumentation string `json:"generated_documentation"`
}

// MessageResponse is the static payload of GET /.
type MessageResponse struct {
	Message string `json:"message"`
}

// VideoHandler handles video upload and documentation generation requests.
type VideoHandler struct {
	docService DocService
	logger     *slog.Logger
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(docService DocService, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		docService: docService,
		logger:     logger,
	}
}

// UploadVideo handles POST /upload-video requests.
func (h *VideoHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile(videoFormField)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgNoVideoPart)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			h.logger.Warn("failed to close multipart file", "error", err)
		}
	}()

	if header.Filename == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgNoSelectedFile)
		return
	}

	text, err := h.docService.GenerateFromUpload(r.Context(), file, header.Filename)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UploadVideoResponse{GeneratedDocumentation: text})
}

// Root handles GET / requests with a static informational payload.
func (h *VideoHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Generate documentation"})
}
