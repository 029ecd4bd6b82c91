package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/vidoc/vidoc-api/internal/generation"
)

// documentationPrompt is the fixed instruction sent alongside the uploaded
// video reference.
const documentationPrompt = "Create a simple technical documentation page based on this video. " +
	"Keep it under 500 words, use easy language for beginners (noobs), explain any tech terms simply, and structure it in markdown with:\n" +
	"- Title\n" +
	"- Short intro (what this doc covers)\n" +
	"- Step-by-step guide or key concepts from the video\n" +
	"- Simple visuals descriptions\n" +
	"- Quick tips for new users" +
	"- Try to focus on pointer if the user is pointing to something in the video\n" +
	"- Try to focus on the text if the user is writing something in the video\n" +
	"DON'T include any code or words like Noobs or beginners or similar words."

// generate issues the content-generation call for the uploaded file and
// extracts the documentation text from the response.
func (c *Client) generate(
	ctx context.Context,
	session *retryablehttp.Client,
	mimeType string,
	fileURI string,
) (string, error) {
	payload := generateContentRequest{
		Contents: []content{{
			Parts: []part{
				{FileData: &fileData{MIMEType: mimeType, FileURI: fileURI}},
				{Text: documentationPrompt},
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.requestTimeout())
	defer cancel()

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.APIBaseURL, c.cfg.ModelName)
	req, err := retryablehttp.NewRequestWithContext(callCtx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.cfg.GeminiAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := session.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: requesting generation: %v", generation.ErrUploadFailed, err)
	}
	defer c.closeBody(resp.Body)

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading generation response: %v", generation.ErrUploadFailed, err)
	}

	return c.extractText(ctx, raw), nil
}

// extractText concatenates the textual parts of the first response candidate.
// Malformed bodies and missing candidates degrade to the fixed placeholders;
// at this point the upload already succeeded and the request outcome must not
// depend on the response shape.
func (c *Client) extractText(ctx context.Context, raw []byte) string {
	var parsed generateContentResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.logger.ErrorContext(ctx, "failed to parse generation response",
			"error", err,
			"body_length", len(raw))
		return generation.ParseFailurePlaceholder
	}

	var text strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, p := range parsed.Candidates[0].Content.Parts {
			text.WriteString(p.Text)
		}
	}
	if text.Len() == 0 {
		return generation.NoContentPlaceholder
	}
	return text.String()
}
