package gemini

// File processing states reported by the vendor.
const (
	StateProcessing = "PROCESSING"
	StateActive     = "ACTIVE"
	StateFailed     = "FAILED"
)

// RemoteFile identifies an uploaded file on the vendor side. Name is the
// final path segment of the URI and addresses the file-status endpoint.
type RemoteFile struct {
	URI  string
	Name string
}

// startUploadRequest is the JSON body of the resumable upload initiation call.
type startUploadRequest struct {
	File fileMetadata `json:"file"`
}

type fileMetadata struct {
	DisplayName string `json:"display_name"`
}

// uploadResponse is returned by the finalizing data upload call.
type uploadResponse struct {
	File remoteFileInfo `json:"file"`
}

type remoteFileInfo struct {
	URI   string `json:"uri"`
	Name  string `json:"name,omitempty"`
	State string `json:"state,omitempty"`
}

// fileStatusResponse carries the remote processing state of an uploaded file.
type fileStatusResponse struct {
	State string `json:"state"`
}

// generateContentRequest is the body of the content-generation call.
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

// part is one element of a content parts array: a remote file reference or a
// text fragment.
type part struct {
	FileData *fileData `json:"file_data,omitempty"`
	Text     string    `json:"text,omitempty"`
}

type fileData struct {
	MIMEType string `json:"mime_type"`
	FileURI  string `json:"file_uri"`
}

// generateContentResponse is the subset of the generation response this
// service reads: candidates[0].content.parts[].text.
type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}
