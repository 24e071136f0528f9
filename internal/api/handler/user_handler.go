package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridianhq/user-directory/internal/core/domain"
	"github.com/meridianhq/user-directory/internal/core/ports"
)

const statusSuccess = "success"

// UserHandler handles HTTP requests for user directory CRUD.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "email already in use"})
		}
		return err
	}

	return c.JSON(http.StatusCreated, userEnvelope{Status: statusSuccess, Data: user})
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object}  userListEnvelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListEnvelope{Status: statusSuccess, Data: users})
}

// Get handles GET /users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id (24 hex characters)"
// @Success      200  {object}  userEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.FindOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, userEnvelope{Status: statusSuccess, Data: user})
}

// Update handles PATCH /users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id (24 hex characters)"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return c.JSON(http.StatusConflict, errorResponse{Error: "email already in use"})
		}
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, userEnvelope{Status: statusSuccess, Data: user})
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id (24 hex characters)"
// @Success      200  {object}  userEnvelope
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.service.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, userEnvelope{Status: statusSuccess, Data: user})
}

// userError maps identifier and lookup failures shared by the single-record
// operations; anything else bubbles to the central error handler.
func userError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidUserID):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user id"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "user not found"})
	}
	return err
}
