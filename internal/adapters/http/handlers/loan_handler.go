package handlers

import (
	"log"
	"strconv"
	"strings"

	"loanhub-portal/internal/adapters/http/middleware"
	"loanhub-portal/internal/core/domain"
	"loanhub-portal/internal/core/services"
	"loanhub-portal/internal/pkg/response"
	"loanhub-portal/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles the dashboard and admin loan views
type LoanHandler struct {
	loans *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loans *services.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

// rawNumber holds a JSON number or numeric string verbatim so "missing",
// "0" and out-of-range values validate exactly like the form fields they
// came from.
type rawNumber string

// UnmarshalJSON accepts both 12 and "12"; the validators decide what the
// digits mean.
func (n *rawNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = ""
		return nil
	}
	*n = rawNumber(strings.Trim(s, `"`))
	return nil
}

func (n rawNumber) String() string { return string(n) }

// CreateLoanRequest represents the create-loan request body
type CreateLoanRequest struct {
	Amount     rawNumber `json:"amount"`
	TermMonths rawNumber `json:"termMonths"`
}

// RejectLoanRequest represents the reject request body
type RejectLoanRequest struct {
	Reason string `json:"reason"`
}

// LoanView is a loan enriched with its presentation mapping
type LoanView struct {
	domain.Loan
	StatusColor string `json:"statusColor"`
	StatusText  string `json:"statusText"`
}

func toLoanView(loan domain.Loan) (LoanView, error) {
	pres, err := domain.PresentStatus(loan.Status)
	if err != nil {
		return LoanView{}, err
	}
	return LoanView{Loan: loan, StatusColor: pres.ColorClass, StatusText: pres.Text}, nil
}

func toLoanViews(loans []domain.Loan) ([]LoanView, error) {
	views := make([]LoanView, 0, len(loans))
	for _, loan := range loans {
		view, err := toLoanView(loan)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// unhandledStatus guards the exhaustive presentation mapping: a status this
// build does not know about is a portal defect, not a backend one.
func unhandledStatus(c *fiber.Ctx, err error) error {
	log.Printf("❌ Unhandled loan status from backend: %v", err)
	return response.InternalServerError(c, "Unknown loan status")
}

// OwnLoans lists the calling user's loans
// @Summary My loans
// @Description List the calling user's loan requests
// @Tags Loans
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Security SessionCookie
// @Router /dashboard/loans [get]
func (h *LoanHandler) OwnLoans(c *fiber.Ctx) error {
	session, _ := middleware.SessionFromCtx(c)

	loans, err := h.loans.Own(c.Context(), session.Token)
	if err != nil {
		return backendError(c, err)
	}

	views, err := toLoanViews(loans)
	if err != nil {
		return unhandledStatus(c, err)
	}
	return response.Success(c, "", fiber.Map{"loans": views})
}

// CreateLoan submits a new loan request
// @Summary Request a loan
// @Description Validate locally, create the loan, then re-fetch the list
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body CreateLoanRequest true "Loan request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Security SessionCookie
// @Router /dashboard/loans [post]
func (h *LoanHandler) CreateLoan(c *fiber.Ctx) error {
	session, _ := middleware.SessionFromCtx(c)

	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Local validation; a failed field blocks submission before any
	// network call is issued
	fields := map[string]string{}
	if msg := validate.Amount(req.Amount.String()); msg != "" {
		fields["amount"] = msg
	}
	if msg := validate.TermMonths(req.TermMonths.String()); msg != "" {
		fields["termMonths"] = msg
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	// Validation parsed these same literals, so the conversions cannot
	// fail; the term rules guarantee a whole value, so truncation is exact
	// even for literals like "12.0" or "1e2".
	amount, _ := strconv.ParseFloat(req.Amount.String(), 64)
	termValue, _ := strconv.ParseFloat(req.TermMonths.String(), 64)

	loan, list, err := h.loans.Create(c.Context(), session.Token, amount, int(termValue))
	if err != nil {
		if loan == nil {
			return backendError(c, err)
		}
		// The write landed; only the list refresh failed. Report the
		// created loan so the UI does not invite a duplicate submission.
		log.Printf("⚠️ Loan list refresh failed after create: %v", err)
		created, viewErr := toLoanView(*loan)
		if viewErr != nil {
			return unhandledStatus(c, viewErr)
		}
		return response.Created(c, "Loan requested successfully", fiber.Map{
			"loan": created,
		})
	}

	views, err := toLoanViews(list)
	if err != nil {
		return unhandledStatus(c, err)
	}
	created, err := toLoanView(*loan)
	if err != nil {
		return unhandledStatus(c, err)
	}

	return response.Created(c, "Loan requested successfully", fiber.Map{
		"loan":  created,
		"loans": views,
	})
}

// AllLoans lists every loan (admin)
// @Summary All loans
// @Description List every loan in the system
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Security SessionCookie
// @Router /admin/loans [get]
func (h *LoanHandler) AllLoans(c *fiber.Ctx) error {
	session, _ := middleware.SessionFromCtx(c)

	loans, err := h.loans.All(c.Context(), session.Token)
	if err != nil {
		return backendError(c, err)
	}

	views, err := toLoanViews(loans)
	if err != nil {
		return unhandledStatus(c, err)
	}
	return response.Success(c, "", fiber.Map{"loans": views})
}

// ApproveLoan approves a pending loan (admin)
// @Summary Approve loan
// @Description Approve a pending loan, then re-fetch the list
// @Tags Admin
// @Produce json
// @Param id path string true "Loan id"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Security SessionCookie
// @Router /admin/loans/{id}/approve [patch]
func (h *LoanHandler) ApproveLoan(c *fiber.Ctx) error {
	session, _ := middleware.SessionFromCtx(c)

	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return response.BadRequest(c, "Loan id is required")
	}

	loan, list, err := h.loans.Approve(c.Context(), session.Token, id)
	if err != nil {
		if loan == nil {
			return backendError(c, err)
		}
		log.Printf("⚠️ Loan list refresh failed after decision: %v", err)
		approved, viewErr := toLoanView(*loan)
		if viewErr != nil {
			return unhandledStatus(c, viewErr)
		}
		return response.Success(c, "Loan approved", fiber.Map{
			"loan": approved,
		})
	}

	views, err := toLoanViews(list)
	if err != nil {
		return unhandledStatus(c, err)
	}
	approved, err := toLoanView(*loan)
	if err != nil {
		return unhandledStatus(c, err)
	}

	return response.Success(c, "Loan approved", fiber.Map{
		"loan":  approved,
		"loans": views,
	})
}

// RejectLoan rejects a pending loan (admin)
// @Summary Reject loan
// @Description Reject a pending loan with an optional reason, then re-fetch the list
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Loan id"
// @Param body body RejectLoanRequest false "Rejection reason"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Security SessionCookie
// @Router /admin/loans/{id}/reject [patch]
func (h *LoanHandler) RejectLoan(c *fiber.Ctx) error {
	session, _ := middleware.SessionFromCtx(c)

	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return response.BadRequest(c, "Loan id is required")
	}

	// Reason is optional; an empty body is fine
	var req RejectLoanRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	loan, list, err := h.loans.Reject(c.Context(), session.Token, id, strings.TrimSpace(req.Reason))
	if err != nil {
		if loan == nil {
			return backendError(c, err)
		}
		log.Printf("⚠️ Loan list refresh failed after decision: %v", err)
		rejected, viewErr := toLoanView(*loan)
		if viewErr != nil {
			return unhandledStatus(c, viewErr)
		}
		return response.Success(c, "Loan rejected", fiber.Map{
			"loan": rejected,
		})
	}

	views, err := toLoanViews(list)
	if err != nil {
		return unhandledStatus(c, err)
	}
	rejected, err := toLoanView(*loan)
	if err != nil {
		return unhandledStatus(c, err)
	}

	return response.Success(c, "Loan rejected", fiber.Map{
		"loan":  rejected,
		"loans": views,
	})
}
