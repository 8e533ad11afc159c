package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/abodeconnect/marketplace-api/internal/api/response"
	"github.com/abodeconnect/marketplace-api/internal/core/ports"
)

// UserHandler serves profile endpoints. Session cookie handling is shared
// with AuthHandler so that deleting an account also signs the caller out.
type UserHandler struct {
	service ports.UserService
	session *AuthHandler
}

func NewUserHandler(service ports.UserService, session *AuthHandler) *UserHandler {
	return &UserHandler{service: service, session: session}
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"  validate:"omitempty,email"`
	Avatar   string `json:"avatar" validate:"omitempty,imageurl"`
	Password string `json:"password"`
}

// Get handles GET /user/:id.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Envelope{data=domain.User}
// @Failure      404  {object}  errorResponse
// @Router       /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "User retrieved successfully!", user)
}

// Update handles PUT /user/:id.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope{data=domain.User}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), caller, c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "User updated successfully.", user)
}

// Delete handles DELETE /user/:id and signs the caller out.
//
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	h.session.clearSessionCookie(c)
	return response.OK(c, http.StatusOK, "User has been deleted successfully!", nil)
}

// Listings handles GET /user/listings/:id.
//
// @Summary      List own listings
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Envelope{data=[]domain.Listing}
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/listings/{id} [get]
func (h *UserHandler) Listings(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	listings, err := h.service.Listings(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return response.List(c, "User listings retrieved successfully!", len(listings), listings)
}
