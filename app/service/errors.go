package service

import "errors"

var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrActionRequired         = errors.New("activity action is required")
	ErrUserNotFound           = errors.New("user not found")
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrInvalidDateRange       = errors.New("end date must not be before start date")
	ErrPaymentAlreadySettled  = errors.New("payment already settled")
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingConflict        = errors.New("court is already booked for that time")
	ErrBookingNotCancellable  = errors.New("booking cannot be cancelled")
	ErrSettingNotFound        = errors.New("setting not found")
	ErrSettingValueNotNumeric = errors.New("setting value is not numeric")
)
