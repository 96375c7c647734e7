package mapper

import (
	"time"

	"github.com/vibast-solutions/ms-go-club/app/entity"
	"github.com/vibast-solutions/ms-go-club/app/types"
)

func NotificationToResponse(item *entity.Notification) types.NotificationResponse {
	return types.NotificationResponse{
		ID: item.ID,
		Data: types.NotificationData{
			Title:     item.Title,
			Message:   item.Message,
			ActionURL: item.ActionURL,
			Type:      item.Type,
		},
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		ReadAt:    formatTime(item.ReadAt),
	}
}

func NotificationsToResponse(items []*entity.Notification) []types.NotificationResponse {
	result := make([]types.NotificationResponse, 0, len(items))
	for _, item := range items {
		result = append(result, NotificationToResponse(item))
	}
	return result
}

func SubscriptionToResponse(item *entity.MemberSubscription) types.SubscriptionResponse {
	return types.SubscriptionResponse{
		ID:               item.ID,
		UserID:           item.UserID,
		RecordedBy:       item.RecordedBy,
		Type:             item.Type,
		StartDate:        item.StartDate.Format(types.DateLayout),
		EndDate:          item.EndDate.Format(types.DateLayout),
		AmountCents:      item.AmountCents,
		PaymentMethod:    item.PaymentMethod,
		PaymentReference: item.PaymentReference,
		PaymentStatus:    item.PaymentStatus,
		VerifiedBy:       item.VerifiedBy,
		VerifiedAt:       formatTime(item.VerifiedAt),
		CreatedAt:        item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func SubscriptionsToResponse(items []*entity.MemberSubscription) []types.SubscriptionResponse {
	result := make([]types.SubscriptionResponse, 0, len(items))
	for _, item := range items {
		result = append(result, SubscriptionToResponse(item))
	}
	return result
}

func BookingToResponse(item *entity.Booking) types.BookingResponse {
	return types.BookingResponse{
		ID:          item.ID,
		UserID:      item.UserID,
		Court:       item.Court,
		StartAt:     item.StartAt.UTC().Format(time.RFC3339),
		EndAt:       item.EndAt.UTC().Format(time.RFC3339),
		AmountCents: item.AmountCents,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func BookingsToResponse(items []*entity.Booking) []types.BookingResponse {
	result := make([]types.BookingResponse, 0, len(items))
	for _, item := range items {
		result = append(result, BookingToResponse(item))
	}
	return result
}

func ActivityLogsToResponse(items []*entity.ActivityLog) []types.ActivityLogResponse {
	result := make([]types.ActivityLogResponse, 0, len(items))
	for _, item := range items {
		result = append(result, types.ActivityLogResponse{
			ID:          item.ID,
			UserID:      item.UserID,
			Action:      item.Action,
			Description: item.Description,
			SubjectType: item.SubjectType,
			SubjectID:   item.SubjectID,
			IPAddress:   item.IPAddress,
			CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return result
}

func SettingToResponse(item *entity.Setting) types.SettingResponse {
	return types.SettingResponse{
		Key:         item.Key,
		Value:       item.Value,
		Description: item.Description,
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func SettingsToResponse(items []*entity.Setting) []types.SettingResponse {
	result := make([]types.SettingResponse, 0, len(items))
	for _, item := range items {
		result = append(result, SettingToResponse(item))
	}
	return result
}

func formatTime(v *time.Time) *string {
	if v == nil {
		return nil
	}
	formatted := v.UTC().Format(time.RFC3339)
	return &formatted
}
