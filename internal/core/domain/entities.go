package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is one the system knows about.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// LoanStatus represents the lifecycle state of a loan
type LoanStatus string

const (
	StatusPending  LoanStatus = "PENDING"
	StatusApproved LoanStatus = "APPROVED"
	StatusRejected LoanStatus = "REJECTED"
)

// User represents a user as exposed by the loan backend
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the authenticated identity held for a browsing context.
// It mirrors exactly what the backend returns on login/register and is
// what gets serialized into the session store.
type Session struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the session belongs to an ADMIN user.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Loan represents a loan request record.
// A loan is created PENDING and transitions exactly once, to APPROVED or
// REJECTED. DecisionAt/DecisionBy are set iff the status is no longer
// PENDING; RejectionReason only when REJECTED.
type Loan struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Amount          float64    `json:"amount"`
	TermMonths      int        `json:"termMonths"`
	Status          LoanStatus `json:"status"`
	RequestedAt     time.Time  `json:"requestedAt"`
	DecisionAt      *time.Time `json:"decisionAt"`
	DecisionBy      *string    `json:"decisionBy"`
	RejectionReason *string    `json:"rejectionReason"`
}

// IsDecided reports whether the loan has left the PENDING state.
func (l *Loan) IsDecided() bool {
	return l.Status != StatusPending
}
