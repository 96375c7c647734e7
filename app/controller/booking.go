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

type bookingService interface {
	ListOwn(ctx context.Context, userID uint64) ([]*entity.Booking, error)
	Create(ctx context.Context, actor entity.Actor, req *types.CreateBookingRequest) (*entity.Booking, error)
	Cancel(ctx context.Context, actor entity.Actor, id uint64) (*entity.Booking, error)
}

type BookingController struct {
	bookings bookingService
	logger   logrus.FieldLogger
}

func NewBookingController(bookings bookingService) *BookingController {
	return &BookingController{
		bookings: bookings,
		logger:   factory.NewModuleLogger("booking-controller"),
	}
}

func (c *BookingController) Index(ctx echo.Context) error {
	user, err := currentUser(ctx)
	if user == nil {
		return err
	}

	items, err := c.bookings.ListOwn(ctx.Request().Context(), user.ID)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List bookings failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return renderPage(ctx, "Bookings/Index", map[string]any{
		"bookings": mapper.BookingsToResponse(items),
	})
}

func (c *BookingController) Store(ctx echo.Context) error {
	req, err := types.NewCreateBookingRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.bookings.Create(ctx.Request().Context(), middleware.CurrentActor(ctx), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidDateRange):
			return writeError(ctx, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrBookingConflict):
			return writeError(ctx, http.StatusConflict, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Create booking failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.BookingEnvelopeResponse{Booking: mapper.BookingToResponse(item)})
}

func (c *BookingController) Cancel(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.bookings.Cancel(ctx.Request().Context(), middleware.CurrentActor(ctx), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return writeError(ctx, http.StatusNotFound, "booking not found")
		case errors.Is(err, service.ErrBookingNotCancellable):
			return writeError(ctx, http.StatusConflict, err.Error())
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Cancel booking failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.BookingEnvelopeResponse{Booking: mapper.BookingToResponse(item)})
}
