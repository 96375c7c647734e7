package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/events"
	"github.com/vibast-solutions/ms-go-club/app/factory"
	"github.com/vibast-solutions/ms-go-club/app/metrics"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	expiryLookaheadDays     = 3
	expiryDateLayout        = "Jan 2, 2006"
	expiryNotificationTitle = "Membership Expiring Soon"
	membershipActionURL     = "/membership"
)

type expiringSubscriptionRepository interface {
	ListEndingBetween(ctx context.Context, start, end time.Time) ([]*entity.MemberSubscription, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
}

type expiryNotificationStore interface {
	Create(ctx context.Context, item *entity.Notification) error
	ExistsWithMessageFragment(ctx context.Context, userID uint64, notificationType, fragment string) (bool, error)
}

type ExpiryRunResult struct {
	Sent        int
	Skipped     int
	Failed      int
	WindowStart time.Time
	WindowEnd   time.Time
}

// ExpiryNotifier reminds members whose subscription ends within the next three days.
// A reminder is sent once per user and expiry date: an existing membership_expiry
// notification whose message mentions the formatted date suppresses a new one.
// Two subscriptions of the same user ending on the same day therefore share one reminder.
type ExpiryNotifier struct {
	subscriptions expiringSubscriptionRepository
	users         userFinder
	notifications expiryNotificationStore
	publisher     events.Publisher
	location      *time.Location
	now           func() time.Time
	logger        logrus.FieldLogger
}

func NewExpiryNotifier(
	subscriptions expiringSubscriptionRepository,
	users userFinder,
	notifications expiryNotificationStore,
	publisher events.Publisher,
	location *time.Location,
) *ExpiryNotifier {
	if location == nil {
		location = time.UTC
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ExpiryNotifier{
		subscriptions: subscriptions,
		users:         users,
		notifications: notifications,
		publisher:     publisher,
		location:      location,
		now:           time.Now,
		logger:        factory.NewModuleLogger("membership-expiry-notifier"),
	}
}

func (n *ExpiryNotifier) Run(ctx context.Context) (*ExpiryRunResult, error) {
	start, end := expiryWindow(n.now(), n.location)
	result := &ExpiryRunResult{WindowStart: start, WindowEnd: end}

	items, err := n.subscriptions.ListEndingBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		created, err := n.notifyOne(ctx, item)
		if err != nil {
			result.Failed++
			n.logger.WithError(err).WithField("subscription_id", item.ID).Warn("Membership expiry notification failed")
			continue
		}
		if created {
			result.Sent++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

func (n *ExpiryNotifier) notifyOne(ctx context.Context, item *entity.MemberSubscription) (bool, error) {
	if item.UserID == nil {
		n.logger.WithField("subscription_id", item.ID).Debug("Subscription has no owner, skipping")
		return false, nil
	}

	user, err := n.users.FindByID(ctx, *item.UserID)
	if err != nil {
		return false, err
	}
	if user == nil {
		n.logger.WithField("subscription_id", item.ID).Debug("Subscription owner not found, skipping")
		return false, nil
	}

	expiresOn := item.EndDate.Format(expiryDateLayout)
	exists, err := n.notifications.ExistsWithMessageFragment(ctx, user.ID, entity.NotificationTypeMembershipExpiry, expiresOn)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	notification := &entity.Notification{
		UserID:    user.ID,
		Type:      entity.NotificationTypeMembershipExpiry,
		Title:     expiryNotificationTitle,
		Message:   expiryMessage(item.Type, expiresOn),
		ActionURL: membershipActionURL,
		CreatedAt: n.now().UTC(),
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		return false, err
	}
	metrics.NotificationsCreated.WithLabelValues(notification.Type).Inc()

	if err := n.publisher.Publish(ctx, events.RoutingKeyNotificationCreated, notificationCreatedEvent(notification)); err != nil {
		n.logger.WithError(err).WithField("notification_id", notification.ID).Warn("Failed to publish notification event")
	}
	return true, nil
}

// expiryWindow returns tomorrow and the day three days from now as calendar dates in loc.
func expiryWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return today.AddDate(0, 0, 1), today.AddDate(0, 0, expiryLookaheadDays)
}

func expiryMessage(subscriptionType, expiresOn string) string {
	return fmt.Sprintf(
		"Your %s membership will expire on %s. Please renew to keep your member benefits.",
		displaySubscriptionType(subscriptionType),
		expiresOn,
	)
}

func displaySubscriptionType(subscriptionType string) string {
	normalized := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(subscriptionType))
	return cases.Title(language.English).String(normalized)
}

func notificationCreatedEvent(item *entity.Notification) events.NotificationCreated {
	return events.NotificationCreated{
		ID:        item.ID,
		UserID:    item.UserID,
		Type:      item.Type,
		Title:     item.Title,
		Message:   item.Message,
		ActionURL: item.ActionURL,
		CreatedAt: item.CreatedAt,
	}
}
