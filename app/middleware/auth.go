package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/factory"
	"github.com/vibast-solutions/ms-go-club/app/service"
)

const userContextKey = "club.user"

type sessionAuthenticator interface {
	Authenticate(ctx context.Context, tokenStr string) (*entity.User, error)
}

// Authenticate resolves the session token from the cookie or an Authorization bearer
// header. Requests without a usable token continue unauthenticated.
func Authenticate(auth sessionAuthenticator, cookieName string) echo.MiddlewareFunc {
	logger := factory.NewModuleLogger("auth-middleware")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := SessionToken(c, cookieName)
			if tokenStr == "" {
				return next(c)
			}

			user, err := auth.Authenticate(c.Request().Context(), tokenStr)
			switch {
			case err == nil:
				c.Set(userContextKey, user)
			case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserNotFound):
				factory.LoggerWithContext(logger, c).WithError(err).Debug("Session token rejected")
			default:
				factory.LoggerWithContext(logger, c).WithError(err).Warn("Session lookup failed")
			}
			return next(c)
		}
	}
}

func SessionToken(c echo.Context, cookieName string) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(userContextKey).(*entity.User)
	return user
}

func SetCurrentUser(c echo.Context, user *entity.User) {
	c.Set(userContextKey, user)
}

// CurrentActor builds the audit actor for the request.
func CurrentActor(c echo.Context) entity.Actor {
	return entity.ActorFromUser(CurrentUser(c), c.RealIP())
}
