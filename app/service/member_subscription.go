package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/factory"
	"github.com/vibast-solutions/ms-go-club/app/repository"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

const defaultSubscriptionListLimit = 100

type memberSubscriptionRepository interface {
	Create(ctx context.Context, item *entity.MemberSubscription) error
	UpdatePayment(ctx context.Context, item *entity.MemberSubscription) error
	FindByID(ctx context.Context, id uint64) (*entity.MemberSubscription, error)
	ListByUser(ctx context.Context, userID uint64) ([]*entity.MemberSubscription, error)
	List(ctx context.Context, paymentStatus string, limit int) ([]*entity.MemberSubscription, error)
}

type activityRecorder interface {
	Log(ctx context.Context, actor entity.Actor, action string, description *string, subject entity.Subject) (*entity.ActivityLog, error)
}

type MembershipService struct {
	repo     memberSubscriptionRepository
	users    userFinder
	activity activityRecorder
	now      func() time.Time
	logger   logrus.FieldLogger
}

func NewMembershipService(repo memberSubscriptionRepository, users userFinder, activity activityRecorder) *MembershipService {
	return &MembershipService{
		repo:     repo,
		users:    users,
		activity: activity,
		now:      time.Now,
		logger:   factory.NewModuleLogger("membership-service"),
	}
}

func (s *MembershipService) ListOwn(ctx context.Context, userID uint64) ([]*entity.MemberSubscription, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *MembershipService) List(ctx context.Context, req *types.ListSubscriptionsRequest) ([]*entity.MemberSubscription, error) {
	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = defaultSubscriptionListLimit
	}
	return s.repo.List(ctx, req.PaymentStatus, limit)
}

// Record stores a subscription a staff member took payment for. Payment starts pending.
func (s *MembershipService) Record(ctx context.Context, actor entity.Actor, req *types.CreateSubscriptionRequest) (*entity.MemberSubscription, error) {
	startDate, endDate := req.Dates()
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, req.EndDate, req.StartDate)
	}

	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := s.now().UTC()
	userID := user.ID
	item := &entity.MemberSubscription{
		UserID:        &userID,
		RecordedBy:    actor.UserID,
		Type:          req.Type,
		StartDate:     startDate,
		EndDate:       endDate,
		AmountCents:   req.AmountCents,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.PaymentReference != "" {
		item.PaymentReference = stringPtr(req.PaymentReference)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "subscription.created",
		fmt.Sprintf("Recorded %s subscription for %s until %s", displaySubscriptionType(item.Type), user.Name, req.EndDate),
		item)
	return item, nil
}

// SettlePayment moves a pending payment to verified or rejected. Settled payments are final.
func (s *MembershipService) SettlePayment(ctx context.Context, actor entity.Actor, req *types.VerifyPaymentRequest) (*entity.MemberSubscription, error) {
	item, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrSubscriptionNotFound
	}
	if item.PaymentStatus != entity.PaymentStatusPending {
		return nil, fmt.Errorf("%w: payment is %s", ErrPaymentAlreadySettled, item.PaymentStatus)
	}

	now := s.now().UTC()
	item.PaymentStatus = req.Status
	item.VerifiedBy = actor.UserID
	item.VerifiedAt = &now
	item.UpdatedAt = now

	if err := s.repo.UpdatePayment(ctx, item); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	action := "subscription.payment_verified"
	if item.PaymentStatus == entity.PaymentStatusRejected {
		action = "subscription.payment_rejected"
	}
	s.record(ctx, actor, action, fmt.Sprintf("Payment %s for subscription #%d", item.PaymentStatus, item.ID), item)
	return item, nil
}

func (s *MembershipService) record(ctx context.Context, actor entity.Actor, action, description string, subject entity.Subject) {
	if _, err := s.activity.Log(ctx, actor, action, stringPtr(description), subject); err != nil {
		s.logger.WithError(err).WithField("action", action).Warn("Failed to write activity log")
	}
}
