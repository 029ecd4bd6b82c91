// Package redact scrubs the vendor API credential from strings before they
// are logged or returned in error responses. Upstream error text routinely
// embeds the key, either as a key= query parameter on a file-status URL or as
// an echoed x-goog-api-key header value.
package redact

import "regexp"

// RedactedKeyPlaceholder replaces any credential found in a string.
const RedactedKeyPlaceholder = "[REDACTED_KEY]"

// Precompiled regex patterns
var (
	// key=... query parameters on vendor URLs
	queryKeyRegex = regexp.MustCompile(`(?i)([?&]key=)[A-Za-z0-9_\-.~%]+`)

	// echoed x-goog-api-key header values
	headerKeyRegex = regexp.MustCompile(`(?i)(x-goog-api-key["':=\s]+)[A-Za-z0-9_\-.~]+`)

	// generic api_key/apikey assignments in wrapped error text
	apiKeyRegex = regexp.MustCompile(`(?i)(api[_-]?key["'\s:=]+)[A-Za-z0-9_\-.~]{8,}`)
)

// String redacts API credentials from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := queryKeyRegex.ReplaceAllString(input, "${1}"+RedactedKeyPlaceholder)
	result = headerKeyRegex.ReplaceAllString(result, "${1}"+RedactedKeyPlaceholder)
	result = apiKeyRegex.ReplaceAllString(result, "${1}"+RedactedKeyPlaceholder)
	return result
}

// Error redacts API credentials from an error's message. A nil error yields
// the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
