package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logintest/login-api/internal/core/ports"
)

var errInvalidPayload = echo.NewHTTPError(http.StatusBadRequest, "invalid payload")

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// credentialsRequest is the body accepted by /login and /register.
type credentialsRequest struct {
	Email    string `json:"email" validate:"notblank" example:"test@example.com"`
	Password string `json:"password" validate:"notblank" example:"Password123!"`
}

// Login checks an email/password pair.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  domain.LoginResult
// @Failure      400   {object}  domain.LoginResult
// @Failure      401   {object}  domain.LoginResult
// @Failure      500   {object}  domain.LoginResult
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Register stores a new email/password pair.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      201   {object}  domain.LoginResult
// @Failure      400   {object}  domain.LoginResult
// @Failure      409   {object}  domain.LoginResult
// @Failure      500   {object}  domain.LoginResult
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func bindCredentials(c echo.Context) (*credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return nil, errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
