package entity

import (
	"time"
)

// User is the aggregate root for the auth domain.
// Password holds the stored hash, never the raw value.
//
// Accounts are deactivated via IsActive instead of being deleted.
type User struct {
	ID           int64
	Email        string
	Password     string
	FullName     string
	ProfilePhoto string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastActive   *time.Time
}
