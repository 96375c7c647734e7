package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/factory"
	"github.com/vibast-solutions/ms-go-club/app/repository"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

type bookingRepository interface {
	Create(ctx context.Context, item *entity.Booking) error
	UpdateStatus(ctx context.Context, item *entity.Booking) error
	FindByID(ctx context.Context, id uint64) (*entity.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Booking, error)
	HasOverlap(ctx context.Context, court int32, start, end time.Time) (bool, error)
}

type BookingService struct {
	repo     bookingRepository
	settings settingReader
	activity activityRecorder
	now      func() time.Time
	logger   logrus.FieldLogger
}

func NewBookingService(repo bookingRepository, settings settingReader, activity activityRecorder) *BookingService {
	return &BookingService{
		repo:     repo,
		settings: settings,
		activity: activity,
		now:      time.Now,
		logger:   factory.NewModuleLogger("booking-service"),
	}
}

func (s *BookingService) ListOwn(ctx context.Context, userID uint64) ([]*entity.Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *BookingService) Create(ctx context.Context, actor entity.Actor, req *types.CreateBookingRequest) (*entity.Booking, error) {
	if actor.IsSystem() {
		return nil, fmt.Errorf("%w: bookings need a user", ErrInvalidRequest)
	}

	start, end := req.Window()
	if !end.After(start) {
		return nil, fmt.Errorf("%w: booking must end after it starts", ErrInvalidDateRange)
	}
	now := s.now().UTC()
	if start.Before(now) {
		return nil, fmt.Errorf("%w: booking starts in the past", ErrInvalidRequest)
	}

	overlap, err := s.repo.HasOverlap(ctx, req.Court, start, end)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrBookingConflict
	}

	rate, err := s.hourlyRate(ctx, actor.Role)
	if err != nil {
		return nil, err
	}

	item := &entity.Booking{
		UserID:      *actor.UserID,
		Court:       req.Court,
		StartAt:     start,
		EndAt:       end,
		AmountCents: int64(math.Round(float64(rate) * end.Sub(start).Hours())),
		Status:      entity.BookingStatusConfirmed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	s.record(ctx, actor, "booking.created",
		fmt.Sprintf("Booked court %d from %s to %s", item.Court, start.Format(time.RFC3339), end.Format(time.RFC3339)),
		item)
	return item, nil
}

// Cancel cancels a future confirmed booking. Members may cancel only their own bookings,
// staff-level callers may cancel any.
func (s *BookingService) Cancel(ctx context.Context, actor entity.Actor, id uint64) (*entity.Booking, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || !canManageBooking(actor, item) {
		return nil, ErrBookingNotFound
	}

	now := s.now().UTC()
	if item.Status != entity.BookingStatusConfirmed || !item.StartAt.After(now) {
		return nil, ErrBookingNotCancellable
	}

	item.Status = entity.BookingStatusCancelled
	item.UpdatedAt = now
	if err := s.repo.UpdateStatus(ctx, item); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	s.record(ctx, actor, "booking.cancelled", fmt.Sprintf("Cancelled booking of court %d", item.Court), item)
	return item, nil
}

func (s *BookingService) hourlyRate(ctx context.Context, role entity.Role) (int64, error) {
	if role.IsMemberLevel() {
		rate, found, err := intSetting(ctx, s.settings, entity.SettingCourtMemberRateCents)
		if err != nil {
			return 0, err
		}
		if found {
			return rate, nil
		}
	}

	rate, found, err := intSetting(ctx, s.settings, entity.SettingCourtHourlyRateCents)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrSettingNotFound, entity.SettingCourtHourlyRateCents)
	}
	return rate, nil
}

func (s *BookingService) record(ctx context.Context, actor entity.Actor, action, description string, subject entity.Subject) {
	if _, err := s.activity.Log(ctx, actor, action, stringPtr(description), subject); err != nil {
		s.logger.WithError(err).WithField("action", action).Warn("Failed to write activity log")
	}
}

func canManageBooking(actor entity.Actor, item *entity.Booking) bool {
	if actor.Role.IsStaffLevel() {
		return true
	}
	return actor.UserID != nil && *actor.UserID == item.UserID
}
