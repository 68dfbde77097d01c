package handlers

import (
	"errors"

	"loanhub-portal/internal/adapters/backend"
	"loanhub-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// backendError maps a loan-backend failure onto the portal response: the
// structured detail when the backend sent one, the generic message
// otherwise. Upstream 5xx becomes 502 so the portal's own 500 stays
// meaningful.
func backendError(c *fiber.Ctx, err error) error {
	var apiErr *backend.Error
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status >= 500 {
			status = fiber.StatusBadGateway
		}
		return response.Error(c, status, apiErr.Message())
	}
	// Transport-level failure (timeout, refused connection, canceled ctx).
	return response.Error(c, fiber.StatusBadGateway, backend.GenericErrorMessage)
}
