package entity

import "time"

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID          uint64
	UserID      uint64
	Court       int32
	StartAt     time.Time
	EndAt       time.Time
	AmountCents int64
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Booking) SubjectType() string {
	return "booking"
}

func (b *Booking) SubjectID() uint64 {
	return b.ID
}
