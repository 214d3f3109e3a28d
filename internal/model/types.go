package model

// MediaType classifies the declared content type of an uploaded file
type MediaType string

const (
	MediaImage       MediaType = "image"
	MediaVideo       MediaType = "video"
	MediaAudio       MediaType = "audio"
	MediaUnsupported MediaType = "unsupported"
)

// ClaimRequest is the immutable input to a single pipeline invocation.
// Exactly one of {UserText alone}, {Media}, {SourceURL} drives extraction;
// UserText may additionally accompany Media as context.
type ClaimRequest struct {
	UserText  string
	Media     *MediaInput
	SourceURL string
}

// MediaInput carries the raw bytes of an uploaded file
type MediaInput struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExtractionResult is produced by the media extraction subsystem.
// Error is the explicit failure channel: when it is non-empty, Text is
// undefined and must not be read.
type ExtractionResult struct {
	Text      string    `json:"text"`
	MediaType MediaType `json:"media_type"`
	Error     string    `json:"error,omitempty"`
}

// Failed reports whether extraction produced an error instead of text
func (r *ExtractionResult) Failed() bool {
	return r != nil && r.Error != ""
}

// UrlExtraction holds the article content and derived claim for a web URL
type UrlExtraction struct {
	ArticleText  string `json:"text"`
	Title        string `json:"title"`
	SourceDomain string `json:"source"`
	MainClaim    string `json:"main_claim"`
	Error        string `json:"error,omitempty"`
}

// Failed reports whether URL extraction produced an error
func (u *UrlExtraction) Failed() bool {
	return u != nil && u.Error != ""
}

// VerdictStatus indicates whether a pipeline invocation succeeded
type VerdictStatus string

const (
	StatusOK    VerdictStatus = "ok"
	StatusError VerdictStatus = "error"
)

// VerdictResult is the sole externally visible output of the pipeline.
// It is always well-formed: either Status is "ok" and VerdictText is
// populated, or Status is "error" and Error describes the failure.
type VerdictResult struct {
	ClaimText     string        `json:"claim_text"`
	Status        VerdictStatus `json:"status"`
	VerdictText   string        `json:"verdict_text,omitempty"`
	Sources       []string      `json:"sources,omitempty"`
	MediaType     string        `json:"media_type,omitempty"`
	MediaFilename string        `json:"media_filename,omitempty"`
	ExtractedText string        `json:"extracted_text,omitempty"`
	SourceURL     string        `json:"source_url,omitempty"`
	Title         string        `json:"title,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// ErrorResult builds an error envelope around a claim and message
func ErrorResult(claimText, message string) *VerdictResult {
	return &VerdictResult{
		ClaimText: claimText,
		Status:    StatusError,
		Sources:   []string{},
		Error:     message,
	}
}
