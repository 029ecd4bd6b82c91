package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidoc/vidoc-api/internal/api"
	"github.com/vidoc/vidoc-api/internal/api/shared"
	"github.com/vidoc/vidoc-api/internal/config"
)

// fakeVendorServer stands in for the vendor API for router-level tests. The
// happy path resolves on the first poll, so no wall-clock waiting happens.
func fakeVendorServer(t *testing.T, state string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/upload/files", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Goog-Upload-Url", server.URL+"/upload-data")
		fmt.Fprint(w, "{}")
	})
	mux.HandleFunc("/upload-data", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"file":{"uri":"files/abc123"}}`)
	})
	mux.HandleFunc("/api/files/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"state":%q}`, state)
	})
	mux.HandleFunc("/api/models/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"# Doc"}]}}]}`)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestApplication(t *testing.T, vendorURL string) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		LLM: config.LLMConfig{
			GeminiAPIKey:          "test-api-key",
			ModelName:             "gemini-2.5-flash",
			UploadBaseURL:         vendorURL + "/upload",
			APIBaseURL:            vendorURL + "/api",
			PollIntervalSeconds:   1,
			PollMaxAttempts:       60,
			RequestTimeoutSeconds: 30,
			UploadTimeoutSeconds:  300,
			MaxRetries:            3,
			RetryBaseDelaySeconds: 1,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}

	app, err := newApplication(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return app
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

// TestRouter_UploadVideo_EndToEnd drives the full stack, from multipart
// request through the staged temp file and the fake vendor, to the response.
func TestRouter_UploadVideo_EndToEnd(t *testing.T) {
	vendor := fakeVendorServer(t, "ACTIVE")
	app := newTestApplication(t, vendor.URL)
	router := app.setupRouter()

	body, contentType := multipartBody(t, "video", "a.txt", "0123456789")
	r := httptest.NewRequest(http.MethodPost, "/upload-video", body)
	r.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.UploadVideoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "# Doc", resp.GeneratedDocumentation)
}

// TestRouter_UploadVideo_ProcessingFailure verifies a remote FAILED state
// surfaces as the upstream error envelope.
func TestRouter_UploadVideo_ProcessingFailure(t *testing.T) {
	vendor := fakeVendorServer(t, "FAILED")
	app := newTestApplication(t, vendor.URL)
	router := app.setupRouter()

	body, contentType := multipartBody(t, "video", "a.txt", "0123456789")
	r := httptest.NewRequest(http.MethodPost, "/upload-video", body)
	r.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, api.MsgUpstreamFailure, resp.Error)
	assert.NotEmpty(t, resp.Detail)
	assert.NotEmpty(t, resp.TraceID)
}

func TestRouter_UploadVideo_MissingPart(t *testing.T) {
	vendor := fakeVendorServer(t, "ACTIVE")
	app := newTestApplication(t, vendor.URL)
	router := app.setupRouter()

	r := httptest.NewRequest(http.MethodPost, "/upload-video", bytes.NewBufferString("{}"))
	r.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, api.MsgNoVideoPart, resp.Error)
}

func TestRouter_Root(t *testing.T) {
	vendor := fakeVendorServer(t, "ACTIVE")
	app := newTestApplication(t, vendor.URL)
	router := app.setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Generate documentation"}`, w.Body.String())
}

func TestRouter_Health(t *testing.T) {
	vendor := fakeVendorServer(t, "ACTIVE")
	app := newTestApplication(t, vendor.URL)
	router := app.setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

// TestRouter_CORSPreflight verifies the configured origin is allowed through
// the preflight exchange.
func TestRouter_CORSPreflight(t *testing.T) {
	vendor := fakeVendorServer(t, "ACTIVE")
	app := newTestApplication(t, vendor.URL)
	router := app.setupRouter()

	r := httptest.NewRequest(http.MethodOptions, "/upload-video", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.Header.Set("Access-Control-Request-Headers", "content-type")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	// An unknown origin gets no allowance.
	r = httptest.NewRequest(http.MethodOptions, "/upload-video", nil)
	r.Header.Set("Origin", "http://evil.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
