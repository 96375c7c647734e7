package entity

import "time"

const (
	PaymentStatusPending  = "pending"
	PaymentStatusVerified = "verified"
	PaymentStatusRejected = "rejected"
)

type MemberSubscription struct {
	ID               uint64
	UserID           *uint64
	RecordedBy       *uint64
	Type             string
	StartDate        time.Time
	EndDate          time.Time
	AmountCents      int64
	PaymentMethod    string
	PaymentReference *string
	PaymentStatus    string
	VerifiedBy       *uint64
	VerifiedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (s *MemberSubscription) SubjectType() string {
	return "member_subscription"
}

func (s *MemberSubscription) SubjectID() uint64 {
	return s.ID
}
