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
	"github.com/vibast-solutions/ms-go-club/app/middleware"
	"github.com/vibast-solutions/ms-go-club/app/service"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

type activityReader interface {
	Latest(ctx context.Context, limit int) ([]*entity.ActivityLog, error)
}

type settingService interface {
	List(ctx context.Context) ([]*entity.Setting, error)
	Update(ctx context.Context, actor entity.Actor, req *types.UpdateSettingRequest) (*entity.Setting, error)
}

type expiryJob interface {
	Run(ctx context.Context) (*service.ExpiryRunResult, error)
}

type AdminController struct {
	activity activityReader
	settings settingService
	expiry   expiryJob
	logger   logrus.FieldLogger
}

func NewAdminController(activity activityReader, settings settingService, expiry expiryJob) *AdminController {
	return &AdminController{
		activity: activity,
		settings: settings,
		expiry:   expiry,
		logger:   factory.NewModuleLogger("admin-controller"),
	}
}

func (c *AdminController) ActivityLogs(ctx echo.Context) error {
	req, err := types.NewLimitRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.activity.Latest(ctx.Request().Context(), req.Limit)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List activity logs failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return renderPage(ctx, "Admin/ActivityLogs", map[string]any{
		"logs": mapper.ActivityLogsToResponse(items),
	})
}

func (c *AdminController) Settings(ctx echo.Context) error {
	items, err := c.settings.List(ctx.Request().Context())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List settings failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return renderPage(ctx, "Admin/Settings", map[string]any{
		"settings": mapper.SettingsToResponse(items),
	})
}

func (c *AdminController) UpdateSetting(ctx echo.Context) error {
	req, err := types.NewUpdateSettingRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.settings.Update(ctx.Request().Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		if errors.Is(err, service.ErrSettingValueNotNumeric) {
			return writeError(ctx, http.StatusUnprocessableEntity, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Update setting failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.SettingEnvelopeResponse{Setting: mapper.SettingToResponse(item)})
}

func (c *AdminController) RunMembershipExpiry(ctx echo.Context) error {
	result, err := c.expiry.Run(ctx.Request().Context())
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Membership expiry run failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.JobRunResponse{
		Sent:        result.Sent,
		Skipped:     result.Skipped,
		Failed:      result.Failed,
		WindowStart: result.WindowStart.Format(types.DateLayout),
		WindowEnd:   result.WindowEnd.Format(types.DateLayout),
	})
}
