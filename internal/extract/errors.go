package extract

import "fmt"

// FailureKind classifies URL extraction failures
type FailureKind string

const (
	FailInvalidURL   FailureKind = "invalid_url"
	FailTimeout      FailureKind = "timeout"
	FailConnection   FailureKind = "connection"
	FailSSL          FailureKind = "ssl"
	FailHTTP         FailureKind = "http"
	FailInsufficient FailureKind = "insufficient_content"
	FailUnknown      FailureKind = "unknown"
)

// FetchError carries a classified fetch failure with its user-facing message
type FetchError struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return e.Message()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Message returns the user-facing description for this failure
func (e *FetchError) Message() string {
	switch e.Kind {
	case FailInvalidURL:
		return "Invalid URL format. Please provide a complete URL (e.g., https://example.com)"
	case FailTimeout:
		return "Request timeout. The website took too long to respond (>20 seconds)."
	case FailConnection:
		return "Connection error. Could not reach the website. The site may be down, blocking automated requests, or there may be a network issue."
	case FailSSL:
		return "SSL certificate error. The website's security certificate could not be verified."
	case FailHTTP:
		return fmt.Sprintf("HTTP error %d. The website returned an error.", e.StatusCode)
	case FailInsufficient:
		return "Could not extract meaningful content from this URL. The page may require JavaScript or have restricted access."
	default:
		if e.Err != nil {
			return fmt.Sprintf("Error extracting content from URL: %v", e.Err)
		}
		return "Error extracting content from URL"
	}
}
