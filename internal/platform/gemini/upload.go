package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/vidoc/vidoc-api/internal/generation"
)

// startUpload initiates the resumable upload session by sending the file
// metadata, and returns the continuation URL the file bytes must be sent to.
func (c *Client) startUpload(
	ctx context.Context,
	session *retryablehttp.Client,
	src generation.VideoSource,
) (string, error) {
	body, err := json.Marshal(startUploadRequest{File: fileMetadata{DisplayName: src.DisplayName}})
	if err != nil {
		return "", fmt.Errorf("failed to encode upload metadata: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.requestTimeout())
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(callCtx, http.MethodPost, c.cfg.UploadBaseURL+"/files", body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload initiation request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.cfg.GeminiAPIKey)
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.FormatInt(src.SizeBytes, 10))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", src.MIMEType)
	req.Header.Set("Content-Type", "application/json")

	resp, err := session.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: initiating upload: %v", generation.ErrUploadFailed, err)
	}
	defer c.closeBody(resp.Body)

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	uploadURL := resp.Header.Get(uploadURLHeader)
	if uploadURL == "" {
		return "", fmt.Errorf("%w: no upload URL returned", generation.ErrUploadFailed)
	}

	c.logger.DebugContext(ctx, "resumable upload session opened",
		"display_name", src.DisplayName,
		"size_bytes", src.SizeBytes,
		"mime_type", src.MIMEType)

	return uploadURL, nil
}

// uploadBytes streams the staged file to the continuation URL in a single
// finalizing call and returns the remote file handle. The file is passed as
// an io.ReadSeeker so the session can rewind it if a retry fires mid-stream.
func (c *Client) uploadBytes(
	ctx context.Context,
	session *retryablehttp.Client,
	uploadURL string,
	src generation.VideoSource,
) (RemoteFile, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return RemoteFile{}, fmt.Errorf("failed to open staged video: %w", err)
	}
	defer c.closeBody(f)

	callCtx, cancel := context.WithTimeout(ctx, c.uploadTimeout())
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(callCtx, http.MethodPost, uploadURL, f)
	if err != nil {
		return RemoteFile{}, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.ContentLength = src.SizeBytes
	req.Header.Set("X-Goog-Upload-Offset", "0")
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	resp, err := session.Do(req)
	if err != nil {
		return RemoteFile{}, fmt.Errorf("%w: uploading file data: %v", generation.ErrUploadFailed, err)
	}
	defer c.closeBody(resp.Body)

	if err := checkStatus(resp); err != nil {
		return RemoteFile{}, err
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return RemoteFile{}, fmt.Errorf("%w: decoding upload response: %v", generation.ErrUploadFailed, err)
	}
	if parsed.File.URI == "" {
		return RemoteFile{}, fmt.Errorf("%w: no file URI returned", generation.ErrUploadFailed)
	}

	uri := parsed.File.URI
	remote := RemoteFile{
		URI:  uri,
		Name: uri[strings.LastIndex(uri, "/")+1:],
	}

	c.logger.DebugContext(ctx, "file data uploaded",
		"file_uri", remote.URI,
		"file_name", remote.Name)

	return remote, nil
}

// waitForActive polls the remote processing state at a fixed interval until
// the file becomes ACTIVE. FAILED aborts immediately. Exhausting the attempt
// budget without ever observing ACTIVE or FAILED reports a timeout.
func (c *Client) waitForActive(ctx context.Context, session *retryablehttp.Client, name string) error {
	statusURL := fmt.Sprintf("%s/files/%s?key=%s",
		c.cfg.APIBaseURL, name, url.QueryEscape(c.cfg.GeminiAPIKey))
	interval := time.Duration(c.cfg.PollIntervalSeconds) * time.Second

	for attempt := 1; attempt <= c.cfg.PollMaxAttempts; attempt++ {
		state, err := c.fileState(ctx, session, statusURL)
		if err != nil {
			return err
		}

		switch state {
		case StateActive:
			c.logger.DebugContext(ctx, "uploaded file is active",
				"file_name", name,
				"attempts", attempt)
			return nil
		case StateFailed:
			return fmt.Errorf("%w: file %s", generation.ErrProcessingFailed, name)
		}

		if err := c.sleep(ctx, interval); err != nil {
			return fmt.Errorf("polling interrupted: %w", err)
		}
	}

	return fmt.Errorf("%w: file %s never became %s within %d attempts",
		generation.ErrProcessingTimeout, name, StateActive, c.cfg.PollMaxAttempts)
}

// fileState performs one status poll.
func (c *Client) fileState(ctx context.Context, session *retryablehttp.Client, statusURL string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.requestTimeout())
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(callCtx, http.MethodGet, statusURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build file status request: %w", err)
	}

	resp, err := session.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: polling file state: %v", generation.ErrUploadFailed, err)
	}
	defer c.closeBody(resp.Body)

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var parsed fileStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decoding file state: %v", generation.ErrUploadFailed, err)
	}
	return parsed.State, nil
}
