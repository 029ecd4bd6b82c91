package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vidoc/vidoc-api/internal/config"
	"github.com/vidoc/vidoc-api/internal/generation"
)

// fakeVendor is an httptest-backed stand-in for the vendor API. Behavior is
// scripted per test through the struct fields; every handler records what it
// received so tests can assert on the wire protocol.
type fakeVendor struct {
	t      *testing.T
	server *httptest.Server

	mu          sync.Mutex
	startCalls  int
	uploadCalls int
	statusCalls int
	genCalls    int

	// failure injection
	startFailures int  // leading 503 responses before the initiation succeeds
	startStatus   int  // non-zero forces this status on every initiation call
	startOmitURL  bool // succeed without the continuation header
	uploadBody    string
	states        []string // per-poll states; the last entry repeats
	genBody       string

	lastStartHeader  http.Header
	lastUploadHeader http.Header
	lastUploadBytes  []byte
	lastGenBody      []byte
}

func newFakeVendor(t *testing.T) *fakeVendor {
	t.Helper()

	v := &fakeVendor{
		t:          t,
		uploadBody: `{"file":{"uri":"files/abc123"}}`,
		states:     []string{StateActive},
		genBody:    `{"candidates":[{"content":{"parts":[{"text":"# Doc"}]}}]}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/upload/files", v.handleStart)
	mux.HandleFunc("/upload-data", v.handleUpload)
	mux.HandleFunc("/api/files/", v.handleStatus)
	mux.HandleFunc("/api/models/", v.handleGenerate)

	v.server = httptest.NewServer(mux)
	t.Cleanup(v.server.Close)
	return v
}

func (v *fakeVendor) handleStart(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.startCalls++
	v.lastStartHeader = r.Header.Clone()

	if v.startFailures > 0 {
		v.startFailures--
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	if v.startStatus != 0 {
		w.WriteHeader(v.startStatus)
		return
	}
	if !v.startOmitURL {
		w.Header().Set("X-Goog-Upload-Url", v.server.URL+"/upload-data")
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "{}")
}

func (v *fakeVendor) handleUpload(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.uploadCalls++
	v.lastUploadHeader = r.Header.Clone()

	body, err := io.ReadAll(r.Body)
	require.NoError(v.t, err)
	v.lastUploadBytes = body

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, v.uploadBody)
}

func (v *fakeVendor) handleStatus(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()

	idx := v.statusCalls
	v.statusCalls++
	if idx >= len(v.states) {
		idx = len(v.states) - 1
	}

	w.WriteHeader(http.StatusOK)
	require.NoError(v.t, json.NewEncoder(w).Encode(fileStatusResponse{State: v.states[idx]}))
}

func (v *fakeVendor) handleGenerate(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.genCalls++
	body, err := io.ReadAll(r.Body)
	require.NoError(v.t, err)
	v.lastGenBody = body

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, v.genBody)
}

func (v *fakeVendor) llmConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:          "test-api-key",
		ModelName:             "gemini-2.5-flash",
		UploadBaseURL:         v.server.URL + "/upload",
		APIBaseURL:            v.server.URL + "/api",
		PollIntervalSeconds:   5,
		PollMaxAttempts:       60,
		RequestTimeoutSeconds: 30,
		UploadTimeoutSeconds:  300,
		MaxRetries:            3,
		RetryBaseDelaySeconds: 1,
	}
}

// testClient builds a Client against the fake vendor with instant retries and
// a counting no-op sleep.
func testClient(t *testing.T, cfg config.LLMConfig) (*Client, *int) {
	t.Helper()

	client, err := NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
	require.NoError(t, err)

	client.retryWaitMin = time.Millisecond
	client.retryWaitMax = 4 * time.Millisecond

	sleeps := 0
	client.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps++
		return ctx.Err()
	}

	return client, &sleeps
}

// stagedVideo writes content to a temp file and returns a matching source.
func stagedVideo(t *testing.T, content string) generation.VideoSource {
	t.Helper()

	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return generation.VideoSource{
		Path:        path,
		DisplayName: "a.txt",
		MIMEType:    "text/plain",
		SizeBytes:   int64(len(content)),
	}
}
