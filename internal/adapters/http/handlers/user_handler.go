package handlers

import (
	"strings"

	"loanhub-portal/internal/adapters/http/middleware"
	"loanhub-portal/internal/core/services"
	"loanhub-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the admin user directory views
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List lists all registered users (admin)
// @Summary All users
// @Description List every registered user
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Security SessionCookie
// @Router /admin/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	session, _ := middleware.SessionFromCtx(c)

	users, err := h.users.List(c.Context(), session.Token)
	if err != nil {
		return backendError(c, err)
	}
	return response.Success(c, "", fiber.Map{"users": users})
}

// Get returns a single user by id (admin)
// @Summary User by id
// @Description Fetch one registered user
// @Tags Admin
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security SessionCookie
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	session, _ := middleware.SessionFromCtx(c)

	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return response.BadRequest(c, "User id is required")
	}

	user, err := h.users.Get(c.Context(), session.Token, id)
	if err != nil {
		return backendError(c, err)
	}
	return response.Success(c, "", fiber.Map{"user": user})
}
