package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

// AuthHandler handles registration, login and account self-service.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  envelope{data=authResponse}
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "validation failed", validationFields(err)...)
	}

	result, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		return err
	}

	return respondMsg(c, http.StatusCreated, authResponse{
		User:  toUserResponse(result.User),
		Token: result.Token,
	}, "User registered successfully")
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope{data=authResponse}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "validation failed", validationFields(err)...)
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respondMsg(c, http.StatusOK, authResponse{
		User:  toUserResponse(result.User),
		Token: result.Token,
	}, "Login successful")
}

// Me returns the current user with the linked employee summary.
//
// @Summary      Get the current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=meResponse}
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	result, err := h.service.Me(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, meResponse{
		userResponse: toUserResponse(result.User),
		Employee:     result.Employee,
	})
}

// UpdateProfile changes the caller's name and/or email.
//
// @Summary      Update the current user's profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  envelope{data=userResponse}
// @Failure      401   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "validation failed", validationFields(err)...)
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), caller.UserID, req.Name, req.Email)
	if err != nil {
		return err
	}
	return respondMsg(c, http.StatusOK, toUserResponse(user), "Profile updated successfully")
}

// ChangePassword verifies the current password and stores a new one.
//
// @Summary      Change the current user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Password change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "validation failed", validationFields(err)...)
	}

	if err := h.service.ChangePassword(c.Request().Context(), caller.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respondMsg(c, http.StatusOK, nil, "Password changed successfully")
}
