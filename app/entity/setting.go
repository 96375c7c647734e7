package entity

import "time"

const (
	SettingCourtHourlyRateCents = "court_hourly_rate_cents"
	SettingCourtMemberRateCents = "court_member_rate_cents"
)

type Setting struct {
	Key         string
	Value       string
	Description string
	UpdatedAt   time.Time
}
