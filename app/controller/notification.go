package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/factory"
	"github.com/vibast-solutions/ms-go-club/app/mapper"
	"github.com/vibast-solutions/ms-go-club/app/service"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

type notificationService interface {
	List(ctx context.Context, userID uint64, limit int) (*service.NotificationList, error)
	MarkRead(ctx context.Context, userID, id uint64) (*entity.Notification, error)
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)
}

type NotificationController struct {
	notifications notificationService
	logger        logrus.FieldLogger
}

func NewNotificationController(notifications notificationService) *NotificationController {
	return &NotificationController{
		notifications: notifications,
		logger:        factory.NewModuleLogger("notifications-controller"),
	}
}

func (c *NotificationController) Index(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if user == nil {
		return err
	}
	req, err := types.NewLimitRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	list, err := c.notifications.List(ctx.Request().Context(), user.ID, req.Limit)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List notifications failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return renderPage(ctx, "Notifications/Index", map[string]any{
		"notifications": mapper.NotificationsToResponse(list.Items),
		"unreadCount":   list.Unread,
	})
}

func (c *NotificationController) MarkRead(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if user == nil {
		return err
	}
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.notifications.MarkRead(ctx.Request().Context(), user.ID, req.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return writeError(ctx, http.StatusNotFound, "notification not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Mark notification read failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, mapper.NotificationToResponse(item))
}

func (c *NotificationController) MarkAllRead(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if user == nil {
		return err
	}

	updated, err := c.notifications.MarkAllRead(ctx.Request().Context(), user.ID)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Mark all notifications read failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.MarkAllReadResponse{Message: "All notifications marked as read", Updated: updated})
}
