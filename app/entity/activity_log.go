package entity

import "time"

// Subject is anything an activity log entry can point at.
type Subject interface {
	SubjectType() string
	SubjectID() uint64
}

type ActivityLog struct {
	ID          uint64
	UserID      *uint64
	Action      string
	Description *string
	SubjectType *string
	SubjectID   *uint64
	IPAddress   string
	CreatedAt   time.Time
}
