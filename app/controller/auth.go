package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/app/factory"
	"github.com/vibast-solutions/ms-go-club/app/middleware"
	"github.com/vibast-solutions/ms-go-club/app/service"
	"github.com/vibast-solutions/ms-go-club/app/types"
	"github.com/vibast-solutions/ms-go-club/app/viewmodel"
)

const dashboardPath = "/dashboard"

type loginService interface {
	Login(ctx context.Context, req *types.LoginRequest, ipAddress string) (*service.LoginResult, error)
}

type SessionCookie struct {
	Name   string
	Secure bool
}

type AuthController struct {
	auth   loginService
	cookie SessionCookie
	logger logrus.FieldLogger
}

func NewAuthController(auth loginService, cookie SessionCookie) *AuthController {
	return &AuthController{
		auth:   auth,
		cookie: cookie,
		logger: factory.NewModuleLogger("auth-controller"),
	}
}

func (c *AuthController) LoginPage(ctx echo.Context) error {
	if middleware.CurrentUser(ctx) != nil {
		return ctx.Redirect(http.StatusFound, dashboardPath)
	}
	return renderPage(ctx, "Auth/Login", nil)
}

func (c *AuthController) Login(ctx echo.Context) error {
	req, err := types.NewLoginRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.auth.Login(ctx.Request().Context(), req, ctx.RealIP())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return writeError(ctx, http.StatusUnauthorized, "These credentials do not match our records.")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Login failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	ctx.SetCookie(c.sessionCookie(result.Token, result.ExpiresAt))

	shared := viewmodel.Project(result.User)
	return ctx.JSON(http.StatusOK, &types.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		User:      shared.Auth.User,
		Access:    shared.Auth.Permissions,
	})
}

func (c *AuthController) Logout(ctx echo.Context) error {
	cookie := c.sessionCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1
	ctx.SetCookie(cookie)
	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Logged out"})
}

func (c *AuthController) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     c.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
