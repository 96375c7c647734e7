package entity

import "time"

const NotificationTypeMembershipExpiry = "membership_expiry"

type Notification struct {
	ID        uint64
	UserID    uint64
	Type      string
	Title     string
	Message   string
	ActionURL string
	ReadAt    *time.Time
	CreatedAt time.Time
}

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
