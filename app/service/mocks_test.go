package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/token"
)

type mockUserRepo struct {
	findByIDFn    func(ctx context.Context, id uint64) (*entity.User, error)
	findByEmailFn func(ctx context.Context, email string) (*entity.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

type mockSubscriptionRepo struct {
	createFn            func(ctx context.Context, item *entity.MemberSubscription) error
	updatePaymentFn     func(ctx context.Context, item *entity.MemberSubscription) error
	findByIDFn          func(ctx context.Context, id uint64) (*entity.MemberSubscription, error)
	listByUserFn        func(ctx context.Context, userID uint64) ([]*entity.MemberSubscription, error)
	listFn              func(ctx context.Context, paymentStatus string, limit int) ([]*entity.MemberSubscription, error)
	listEndingBetweenFn func(ctx context.Context, start, end time.Time) ([]*entity.MemberSubscription, error)
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, item *entity.MemberSubscription) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return nil
}

func (m *mockSubscriptionRepo) UpdatePayment(ctx context.Context, item *entity.MemberSubscription) error {
	if m.updatePaymentFn != nil {
		return m.updatePaymentFn(ctx, item)
	}
	return nil
}

func (m *mockSubscriptionRepo) FindByID(ctx context.Context, id uint64) (*entity.MemberSubscription, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) ListByUser(ctx context.Context, userID uint64) ([]*entity.MemberSubscription, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) List(ctx context.Context, paymentStatus string, limit int) ([]*entity.MemberSubscription, error) {
	if m.listFn != nil {
		return m.listFn(ctx, paymentStatus, limit)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) ListEndingBetween(ctx context.Context, start, end time.Time) ([]*entity.MemberSubscription, error) {
	if m.listEndingBetweenFn != nil {
		return m.listEndingBetweenFn(ctx, start, end)
	}
	return nil, nil
}

type mockNotificationRepo struct {
	findByIDFn    func(ctx context.Context, id uint64) (*entity.Notification, error)
	listByUserFn  func(ctx context.Context, userID uint64, limit int) ([]*entity.Notification, error)
	countUnreadFn func(ctx context.Context, userID uint64) (int64, error)
	markReadFn    func(ctx context.Context, id, userID uint64, at time.Time) error
	markAllReadFn func(ctx context.Context, userID uint64, at time.Time) (int64, error)
}

func (m *mockNotificationRepo) FindByID(ctx context.Context, id uint64) (*entity.Notification, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Notification, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	if m.countUnreadFn != nil {
		return m.countUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID uint64, at time.Time) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id, userID, at)
	}
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID uint64, at time.Time) (int64, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(ctx, userID, at)
	}
	return 0, nil
}

// memoryNotifications keeps created notifications so repeated runs see earlier ones.
type memoryNotifications struct {
	items    []*entity.Notification
	createFn func(item *entity.Notification) error
}

func (m *memoryNotifications) Create(_ context.Context, item *entity.Notification) error {
	if m.createFn != nil {
		if err := m.createFn(item); err != nil {
			return err
		}
	}
	item.ID = uint64(len(m.items) + 1)
	m.items = append(m.items, item)
	return nil
}

func (m *memoryNotifications) ExistsWithMessageFragment(_ context.Context, userID uint64, notificationType, fragment string) (bool, error) {
	for _, item := range m.items {
		if item.UserID == userID && item.Type == notificationType && strings.Contains(item.Message, fragment) {
			return true, nil
		}
	}
	return false, nil
}

type mockActivityRepo struct {
	createFn     func(ctx context.Context, item *entity.ActivityLog) error
	listLatestFn func(ctx context.Context, limit int) ([]*entity.ActivityLog, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, item *entity.ActivityLog) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return nil
}

func (m *mockActivityRepo) ListLatest(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	if m.listLatestFn != nil {
		return m.listLatestFn(ctx, limit)
	}
	return nil, nil
}

type recordedActivity struct {
	actor       entity.Actor
	action      string
	description string
	subject     entity.Subject
}

type recordingActivity struct {
	entries []recordedActivity
	err     error
}

func (r *recordingActivity) Log(_ context.Context, actor entity.Actor, action string, description *string, subject entity.Subject) (*entity.ActivityLog, error) {
	if r.err != nil {
		return nil, r.err
	}
	entry := recordedActivity{actor: actor, action: action, subject: subject}
	if description != nil {
		entry.description = *description
	}
	r.entries = append(r.entries, entry)
	return &entity.ActivityLog{Action: action}, nil
}

type mockBookingRepo struct {
	createFn       func(ctx context.Context, item *entity.Booking) error
	updateStatusFn func(ctx context.Context, item *entity.Booking) error
	findByIDFn     func(ctx context.Context, id uint64) (*entity.Booking, error)
	listByUserFn   func(ctx context.Context, userID uint64) ([]*entity.Booking, error)
	hasOverlapFn   func(ctx context.Context, court int32, start, end time.Time) (bool, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, item *entity.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, item *entity.Booking) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, item)
	}
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uint64) (*entity.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*entity.Booking, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockBookingRepo) HasOverlap(ctx context.Context, court int32, start, end time.Time) (bool, error) {
	if m.hasOverlapFn != nil {
		return m.hasOverlapFn(ctx, court, start, end)
	}
	return false, nil
}

// staticSettings serves settings from a map.
type staticSettings struct {
	values   map[string]string
	upserted []*entity.Setting
	getErr   error
}

func (s *staticSettings) Get(_ context.Context, key string) (*entity.Setting, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	return &entity.Setting{Key: key, Value: value, Description: key + " description"}, nil
}

func (s *staticSettings) List(_ context.Context) ([]*entity.Setting, error) {
	items := make([]*entity.Setting, 0, len(s.values))
	for key, value := range s.values {
		items = append(items, &entity.Setting{Key: key, Value: value})
	}
	return items, nil
}

func (s *staticSettings) Upsert(_ context.Context, item *entity.Setting) error {
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[item.Key] = item.Value
	s.upserted = append(s.upserted, item)
	return nil
}

type publishedMessage struct {
	routingKey string
	message    any
}

type recordingPublisher struct {
	messages []publishedMessage
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, message any) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, publishedMessage{routingKey: routingKey, message: message})
	return nil
}

type fakeTokens struct {
	generateFn func(userID uint64, role string) (string, time.Time, error)
	parseFn    func(tokenStr string) (*token.Claims, error)
}

func (f *fakeTokens) Generate(userID uint64, role string) (string, time.Time, error) {
	if f.generateFn != nil {
		return f.generateFn(userID, role)
	}
	return "signed-token", time.Date(2025, 2, 9, 20, 0, 0, 0, time.UTC), nil
}

func (f *fakeTokens) Parse(tokenStr string) (*token.Claims, error) {
	if f.parseFn != nil {
		return f.parseFn(tokenStr)
	}
	return nil, errors.New("not configured")
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func uint64Ref(v uint64) *uint64 {
	return &v
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
