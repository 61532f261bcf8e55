package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/UShishir5355t/real-estate-mvp/auth"
	"github.com/UShishir5355t/real-estate-mvp/middleware"
	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

type AuthController struct {
	provider auth.IdentityProvider
	tokens   *utils.JWTManager
}

func NewAuthController(provider auth.IdentityProvider, tokens *utils.JWTManager) *AuthController {
	return &AuthController{provider: provider, tokens: tokens}
}

// Login signs in through the identity provider and hands back an
// application token for the admin API.
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email and password are required"})
	}

	session, err := auth.SignIn(c.Request().Context(), ac.provider, req.Email, req.Password)
	if err != nil {
		var authErr *auth.Error
		errors.As(err, &authErr)
		status := http.StatusUnauthorized
		switch authErr.Code {
		case auth.CodeTooManyRequests:
			status = http.StatusTooManyRequests
		case auth.CodeNetworkFailed:
			status = http.StatusBadGateway
		}
		utils.Logger.WithError(authErr.Unwrap()).WithField("code", authErr.Code).Warn("login rejected")
		return c.JSON(status, map[string]string{
			"error": authErr.Message,
			"code":  authErr.Code,
		})
	}

	token, expiresAt, err := ac.tokens.Generate(session.User.UID, session.User.Email, session.User.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		IDToken:   session.IDToken,
		ExpiresAt: expiresAt.Unix(),
		User: models.User{
			ID:    session.User.UID,
			Email: session.User.Email,
			Name:  session.User.DisplayName,
			Role:  session.User.Role,
		},
	})
}

// Me echoes the identity carried by the bearer token.
func (ac *AuthController) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":    c.Get(middleware.ContextUserID),
		"email": c.Get(middleware.ContextUserEmail),
		"role":  c.Get(middleware.ContextUserRole),
	})
}

// TooManyLogins answers requests turned away by the login rate limiter.
func TooManyLogins(c echo.Context, _ string, _ error) error {
	return c.JSON(http.StatusTooManyRequests, map[string]string{
		"error": auth.ErrorMessage(auth.CodeTooManyRequests),
		"code":  auth.CodeTooManyRequests,
	})
}
