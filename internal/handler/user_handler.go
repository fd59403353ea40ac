package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"taskops/internal/logger"
	"taskops/internal/model"
	"taskops/internal/service"
)

// UserHandler serves the /users endpoints.
type UserHandler struct {
	svc    service.UserService
	logger *zap.Logger
}

// NewUserHandler creates a user handler.
func NewUserHandler(svc service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger.OrNop(log)}
}

// CountResponse carries a single counter.
type CountResponse struct {
	Count int `json:"count"`
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body model.CreateUserInput true "User payload"
// @Success 201 {object} Response{data=model.User}
// @Failure 400 {object} Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var input model.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return badRequest("Invalid request body")
	}

	user, err := h.svc.CreateUser(c.Request().Context(), input)
	if err != nil {
		h.logger.Error("Error creating user", zap.Error(err))
		return writeError(err)
	}
	return respond(c, http.StatusCreated, user, "User created successfully")
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} Response{data=[]model.User}
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, users, "")
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response{data=model.User}
// @Failure 404 {object} Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return readError(err)
	}
	if user == nil {
		return notFound("User not found")
	}
	return respond(c, http.StatusOK, user, "")
}

// UpdateUser godoc
// @Summary Update user
// @Description Replaces only the fields present in the body.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body model.UserPatch true "Fields to update"
// @Success 200 {object} Response{data=model.User}
// @Failure 400 {object} Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var patch model.UserPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest("Invalid request body")
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		h.logger.Error("Error updating user", zap.String("user_id", c.Param("id")), zap.Error(err))
		return writeError(err)
	}
	return respond(c, http.StatusOK, user, "User updated successfully")
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.svc.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		h.logger.Error("Error deleting user", zap.String("user_id", c.Param("id")), zap.Error(err))
		return writeError(err)
	}
	return respond(c, http.StatusOK, nil, "User deleted successfully")
}

// CountActiveUsers godoc
// @Summary Count active users
// @Tags users
// @Produce json
// @Success 200 {object} CountResponse
// @Router /users/active/count [get]
func (h *UserHandler) CountActiveUsers(c echo.Context) error {
	count, err := h.svc.ActiveUsersCount(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: count})
}
