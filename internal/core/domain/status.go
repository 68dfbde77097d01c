package domain

import "fmt"

// StatusPresentation holds the UI mapping for a loan status
type StatusPresentation struct {
	ColorClass string `json:"colorClass"`
	Text       string `json:"text"`
}

// PresentStatus maps a loan status to its color class and display text.
// The mapping is exhaustive over the known statuses; any other value is an
// unhandled state and returns an error rather than a silent zero value.
func PresentStatus(status LoanStatus) (StatusPresentation, error) {
	switch status {
	case StatusPending:
		return StatusPresentation{ColorClass: "bg-yellow-100 text-yellow-800", Text: "Pending"}, nil
	case StatusApproved:
		return StatusPresentation{ColorClass: "bg-green-100 text-green-800", Text: "Approved"}, nil
	case StatusRejected:
		return StatusPresentation{ColorClass: "bg-red-100 text-red-800", Text: "Rejected"}, nil
	default:
		return StatusPresentation{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
}
