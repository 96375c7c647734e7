package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/app/factory"
	"github.com/vibast-solutions/ms-go-club/app/mapper"
)

const dashboardNotificationLimit = 5

type DashboardController struct {
	notifications notificationService
	memberships   membershipService
	logger        logrus.FieldLogger
}

func NewDashboardController(notifications notificationService, memberships membershipService) *DashboardController {
	return &DashboardController{
		notifications: notifications,
		memberships:   memberships,
		logger:        factory.NewModuleLogger("dashboard-controller"),
	}
}

func (c *DashboardController) Show(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if user == nil {
		return err
	}
	reqCtx := ctx.Request().Context()

	list, err := c.notifications.List(reqCtx, user.ID, dashboardNotificationLimit)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Load dashboard notifications failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	subscriptions, err := c.memberships.ListOwn(reqCtx, user.ID)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Load dashboard subscriptions failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return renderPage(ctx, "Dashboard", map[string]any{
		"notifications": mapper.NotificationsToResponse(list.Items),
		"unreadCount":   list.Unread,
		"subscriptions": mapper.SubscriptionsToResponse(subscriptions),
	})
}
