package types

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const DateLayout = "2006-01-02"

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func NewLoginRequestFromContext(ctx echo.Context) (*LoginRequest, error) {
	var body LoginRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	return &body, nil
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// IDRequest carries the numeric :id path parameter.
type IDRequest struct {
	ID uint64
}

func NewIDRequestFromContext(ctx echo.Context) (*IDRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &IDRequest{ID: id}, nil
}

func (r *IDRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid id")
	}
	return nil
}

type LimitRequest struct {
	Limit int
}

func NewLimitRequestFromContext(ctx echo.Context) (*LimitRequest, error) {
	raw := strings.TrimSpace(ctx.QueryParam("limit"))
	if raw == "" {
		return &LimitRequest{}, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &LimitRequest{Limit: limit}, nil
}

func (r *LimitRequest) Validate() error {
	if r.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

type CreateBookingRequest struct {
	Court   int32  `json:"court"`
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

func NewCreateBookingRequestFromContext(ctx echo.Context) (*CreateBookingRequest, error) {
	var body CreateBookingRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.StartAt = strings.TrimSpace(body.StartAt)
	body.EndAt = strings.TrimSpace(body.EndAt)
	return &body, nil
}

func (r *CreateBookingRequest) Validate() error {
	if r.Court <= 0 {
		return errors.New("court is required")
	}
	if _, err := time.Parse(time.RFC3339, r.StartAt); err != nil {
		return errors.New("start_at must be RFC3339")
	}
	if _, err := time.Parse(time.RFC3339, r.EndAt); err != nil {
		return errors.New("end_at must be RFC3339")
	}
	return nil
}

// Window returns the parsed booking interval. Call Validate first.
func (r *CreateBookingRequest) Window() (time.Time, time.Time) {
	start, _ := time.Parse(time.RFC3339, r.StartAt)
	end, _ := time.Parse(time.RFC3339, r.EndAt)
	return start.UTC(), end.UTC()
}

type CreateSubscriptionRequest struct {
	UserID           uint64 `json:"user_id"`
	Type             string `json:"type"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	AmountCents      int64  `json:"amount_cents"`
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
}

func NewCreateSubscriptionRequestFromContext(ctx echo.Context) (*CreateSubscriptionRequest, error) {
	var body CreateSubscriptionRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Type = strings.ToLower(strings.TrimSpace(body.Type))
	body.StartDate = strings.TrimSpace(body.StartDate)
	body.EndDate = strings.TrimSpace(body.EndDate)
	body.PaymentMethod = strings.TrimSpace(body.PaymentMethod)
	body.PaymentReference = strings.TrimSpace(body.PaymentReference)
	return &body, nil
}

func (r *CreateSubscriptionRequest) Validate() error {
	if r.UserID == 0 {
		return errors.New("user_id is required")
	}
	if r.Type == "" {
		return errors.New("type is required")
	}
	if _, err := time.Parse(DateLayout, r.StartDate); err != nil {
		return errors.New("start_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(DateLayout, r.EndDate); err != nil {
		return errors.New("end_date must be YYYY-MM-DD")
	}
	if r.AmountCents < 0 {
		return errors.New("amount_cents must not be negative")
	}
	if r.PaymentMethod == "" {
		return errors.New("payment_method is required")
	}
	return nil
}

// Dates returns the parsed start and end dates. Call Validate first.
func (r *CreateSubscriptionRequest) Dates() (time.Time, time.Time) {
	start, _ := time.Parse(DateLayout, r.StartDate)
	end, _ := time.Parse(DateLayout, r.EndDate)
	return start, end
}

type ListSubscriptionsRequest struct {
	PaymentStatus string
	Limit         int
}

func NewListSubscriptionsRequestFromContext(ctx echo.Context) (*ListSubscriptionsRequest, error) {
	req := &ListSubscriptionsRequest{PaymentStatus: strings.ToLower(strings.TrimSpace(ctx.QueryParam("payment_status")))}
	if raw := strings.TrimSpace(ctx.QueryParam("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}
	return req, nil
}

func (r *ListSubscriptionsRequest) Validate() error {
	switch r.PaymentStatus {
	case "", "pending", "verified", "rejected":
	default:
		return errors.New("payment_status must be pending, verified or rejected")
	}
	if r.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

type VerifyPaymentRequest struct {
	ID     uint64 `json:"-"`
	Status string `json:"status"`
}

func NewVerifyPaymentRequestFromContext(ctx echo.Context) (*VerifyPaymentRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	var body VerifyPaymentRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.ID = id
	body.Status = strings.ToLower(strings.TrimSpace(body.Status))
	if body.Status == "" {
		body.Status = "verified"
	}
	return &body, nil
}

func (r *VerifyPaymentRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid subscription id")
	}
	if r.Status != "verified" && r.Status != "rejected" {
		return errors.New("status must be verified or rejected")
	}
	return nil
}

type UpdateSettingRequest struct {
	Key         string `json:"-"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

func NewUpdateSettingRequestFromContext(ctx echo.Context) (*UpdateSettingRequest, error) {
	var body UpdateSettingRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Key = strings.TrimSpace(ctx.Param("key"))
	body.Value = strings.TrimSpace(body.Value)
	body.Description = strings.TrimSpace(body.Description)
	return &body, nil
}

func (r *UpdateSettingRequest) Validate() error {
	if r.Key == "" {
		return errors.New("key is required")
	}
	if len(r.Key) > 100 {
		return errors.New("key must be at most 100 characters")
	}
	if r.Value == "" {
		return errors.New("value is required")
	}
	return nil
}
