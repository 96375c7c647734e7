package types

import "github.com/vibast-solutions/ms-go-club/app/viewmodel"

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PageResponse is what every page route renders: a component name plus its props.
// Props always carry the shared auth view-model under "auth".
type PageResponse struct {
	Component string         `json:"component"`
	URL       string         `json:"url"`
	Props     map[string]any `json:"props"`
}

type LoginResponse struct {
	Token     string                 `json:"token"`
	ExpiresAt string                 `json:"expires_at"`
	User      *viewmodel.User        `json:"user"`
	Access    *viewmodel.Permissions `json:"permissions"`
}

type NotificationData struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	ActionURL string `json:"action_url"`
	Type      string `json:"type"`
}

type NotificationResponse struct {
	ID        uint64           `json:"id"`
	Data      NotificationData `json:"data"`
	CreatedAt string           `json:"created_at"`
	ReadAt    *string          `json:"read_at"`
}

type MarkAllReadResponse struct {
	Message string `json:"message"`
	Updated int64  `json:"updated"`
}

type SubscriptionResponse struct {
	ID               uint64  `json:"id"`
	UserID           *uint64 `json:"user_id"`
	RecordedBy       *uint64 `json:"recorded_by"`
	Type             string  `json:"type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	AmountCents      int64   `json:"amount_cents"`
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference *string `json:"payment_reference"`
	PaymentStatus    string  `json:"payment_status"`
	VerifiedBy       *uint64 `json:"verified_by"`
	VerifiedAt       *string `json:"verified_at"`
	CreatedAt        string  `json:"created_at"`
}

type SubscriptionEnvelopeResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

type BookingResponse struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"user_id"`
	Court       int32  `json:"court"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type BookingEnvelopeResponse struct {
	Booking BookingResponse `json:"booking"`
}

type ActivityLogResponse struct {
	ID          uint64  `json:"id"`
	UserID      *uint64 `json:"user_id"`
	Action      string  `json:"action"`
	Description *string `json:"description"`
	SubjectType *string `json:"subject_type"`
	SubjectID   *uint64 `json:"subject_id"`
	IPAddress   string  `json:"ip_address"`
	CreatedAt   string  `json:"created_at"`
}

type SettingResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updated_at"`
}

type SettingEnvelopeResponse struct {
	Setting SettingResponse `json:"setting"`
}

type JobRunResponse struct {
	Sent        int    `json:"sent"`
	Skipped     int    `json:"skipped"`
	Failed      int    `json:"failed"`
	WindowStart string `json:"window_start"`
	WindowEnd   string `json:"window_end"`
}
