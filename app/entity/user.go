package entity

import "time"

type User struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Avatar       *string
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
