package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-club/app/access"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/metrics"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

const (
	LoginPath           = "/login"
	UnauthorizedMessage = "This action is unauthorized."
)

// RequireRoles admits callers whose role is listed in req. Anonymous callers are sent
// to the login page, everyone else gets 403.
func RequireRoles(req access.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var caller *entity.Role
			if user := CurrentUser(c); user != nil {
				role := user.Role
				caller = &role
			}

			decision := req.Decide(caller)
			metrics.AccessDecisions.WithLabelValues(decision.String()).Inc()

			switch decision {
			case access.DecisionAdmit:
				return next(c)
			case access.DecisionRedirectLogin:
				return c.Redirect(http.StatusFound, LoginPath)
			default:
				return c.JSON(http.StatusForbidden, &types.ErrorResponse{Error: UnauthorizedMessage})
			}
		}
	}
}
