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

type membershipService interface {
	ListOwn(ctx context.Context, userID uint64) ([]*entity.MemberSubscription, error)
	List(ctx context.Context, req *types.ListSubscriptionsRequest) ([]*entity.MemberSubscription, error)
	Record(ctx context.Context, actor entity.Actor, req *types.CreateSubscriptionRequest) (*entity.MemberSubscription, error)
	SettlePayment(ctx context.Context, actor entity.Actor, req *types.VerifyPaymentRequest) (*entity.MemberSubscription, error)
}

type MembershipController struct {
	memberships membershipService
	logger      logrus.FieldLogger
}

func NewMembershipController(memberships membershipService) *MembershipController {
	return &MembershipController{
		memberships: memberships,
		logger:      factory.NewModuleLogger("membership-controller"),
	}
}

func (c *MembershipController) Show(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if user == nil {
		return err
	}

	items, err := c.memberships.ListOwn(ctx.Request().Context(), user.ID)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List own subscriptions failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return renderPage(ctx, "Membership/Show", map[string]any{
		"subscriptions": mapper.SubscriptionsToResponse(items),
	})
}

func (c *MembershipController) StaffIndex(ctx echo.Context) error {
	req, err := types.NewListSubscriptionsRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.memberships.List(ctx.Request().Context(), req)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List subscriptions failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return renderPage(ctx, "Staff/Subscriptions/Index", map[string]any{
		"subscriptions": mapper.SubscriptionsToResponse(items),
		"filters":       map[string]any{"payment_status": req.PaymentStatus},
	})
}

func (c *MembershipController) Store(ctx echo.Context) error {
	req, err := types.NewCreateSubscriptionRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.memberships.Record(ctx.Request().Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDateRange):
			return writeError(ctx, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return writeError(ctx, http.StatusNotFound, "user not found")
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Record subscription failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(item),
	})
}

func (c *MembershipController) VerifyPayment(ctx echo.Context) error {
	req, err := types.NewVerifyPaymentRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.memberships.SettlePayment(ctx.Request().Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubscriptionNotFound):
			return writeError(ctx, http.StatusNotFound, "subscription not found")
		case errors.Is(err, service.ErrPaymentAlreadySettled):
			return writeError(ctx, http.StatusConflict, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Settle payment failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.SubscriptionEnvelopeResponse{
		Subscription: mapper.SubscriptionToResponse(item),
	})
}
