package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/middleware"
	"github.com/vibast-solutions/ms-go-club/app/types"
	"github.com/vibast-solutions/ms-go-club/app/viewmodel"
)

// renderPage writes the page envelope. The shared auth view-model is projected fresh
// for every render and overrides any "auth" key in props.
func renderPage(ctx echo.Context, component string, props map[string]any) error {
	if props == nil {
		props = make(map[string]any, 1)
	}
	props["auth"] = viewmodel.Project(middleware.CurrentUser(ctx)).Auth

	return ctx.JSON(http.StatusOK, &types.PageResponse{
		Component: component,
		URL:       ctx.Request().URL.RequestURI(),
		Props:     props,
	})
}

func writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}

// currentUser returns the caller or nil after writing the login redirect.
// Routes behind the role gate always have a user.
func currentUser(ctx echo.Context) (*entity.User, error) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		return nil, ctx.Redirect(http.StatusFound, middleware.LoginPath)
	}
	return user, nil
}
