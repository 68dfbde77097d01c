package backend

import "fmt"

// GenericErrorMessage is shown when the backend gives no usable detail.
const GenericErrorMessage = "Something went wrong. Please try again."

// Error is the structured error shape the loan backend returns
// (problem-details style: title/status/detail/instance).
type Error struct {
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %d %s: %s", e.Status, e.Title, e.Detail)
	}
	return fmt.Sprintf("backend: %d %s", e.Status, e.Title)
}

// Message returns the human-facing message for this error: the backend's
// detail when present, otherwise the generic fallback.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return GenericErrorMessage
}

// IsAuthError reports whether the error is an authentication or
// authorization failure (401/403).
func (e *Error) IsAuthError() bool {
	return e.Status == 401 || e.Status == 403
}
