package service

import (
	"context"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/vibast-solutions/ms-go-club/app/entity"
)

type activityLogRepository interface {
	Create(ctx context.Context, item *entity.ActivityLog) error
	ListLatest(ctx context.Context, limit int) ([]*entity.ActivityLog, error)
}

// ActivityLogger writes audit entries. The actor is always passed in by the caller.
type ActivityLogger struct {
	repo   activityLogRepository
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewActivityLogger(repo activityLogRepository) *ActivityLogger {
	return &ActivityLogger{
		repo:   repo,
		policy: bluemonday.StrictPolicy(),
		now:    time.Now,
	}
}

func (l *ActivityLogger) Log(ctx context.Context, actor entity.Actor, action string, description *string, subject entity.Subject) (*entity.ActivityLog, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, ErrActionRequired
	}

	item := &entity.ActivityLog{
		UserID:    actor.UserID,
		Action:    action,
		IPAddress: actor.IPAddress,
		CreatedAt: l.now().UTC(),
	}
	if description != nil {
		// Sanitize escapes the text it keeps; store it as plain text.
		cleaned := strings.TrimSpace(html.UnescapeString(l.policy.Sanitize(*description)))
		if cleaned != "" {
			item.Description = &cleaned
		}
	}
	if subject != nil {
		subjectType := subject.SubjectType()
		subjectID := subject.SubjectID()
		item.SubjectType = &subjectType
		item.SubjectID = &subjectID
	}

	if err := l.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (l *ActivityLogger) Latest(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	switch {
	case limit <= 0:
		limit = 50
	case limit > 200:
		limit = 200
	}
	return l.repo.ListLatest(ctx, limit)
}

func stringPtr(v string) *string {
	return &v
}
