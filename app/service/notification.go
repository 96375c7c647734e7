package service

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-club/app/entity"
)

const defaultNotificationLimit = 50

type notificationRepository interface {
	FindByID(ctx context.Context, id uint64) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, id, userID uint64, at time.Time) error
	MarkAllRead(ctx context.Context, userID uint64, at time.Time) (int64, error)
}

type NotificationList struct {
	Items  []*entity.Notification
	Unread int64
}

type NotificationService struct {
	repo notificationRepository
	now  func() time.Time
}

func NewNotificationService(repo notificationRepository) *NotificationService {
	return &NotificationService{repo: repo, now: time.Now}
}

func (s *NotificationService) List(ctx context.Context, userID uint64, limit int) (*NotificationList, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultNotificationLimit
	}

	items, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NotificationList{Items: items, Unread: unread}, nil
}

// MarkRead marks one of the user's notifications as read. Other users' notifications
// are reported as not found. Marking an already read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint64) (*entity.Notification, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	if item.IsRead() {
		return item, nil
	}

	at := s.now().UTC()
	if err := s.repo.MarkRead(ctx, item.ID, userID, at); err != nil {
		return nil, err
	}
	item.ReadAt = &at
	return item, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, s.now().UTC())
}
