package research

import "fmt"

// FetchError means the client website could not be retrieved. It is fatal for a run.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to retrieve website content from %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to retrieve website content from %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ExtractionError means the model could not produce a company profile from page text.
// Callers degrade to a title-only profile.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("profile extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
