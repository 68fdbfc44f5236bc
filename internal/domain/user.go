package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an operator of the donor records system.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         UserRole
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch holds optional user changes. nil means "leave unchanged".
type UserPatch struct {
	Name         *string
	Role         *UserRole
	PasswordHash *string
}

// Setting is a named application setting editable by administrators.
type Setting struct {
	ID          uuid.UUID
	Key         string
	Value       string
	Description *string
	UpdatedAt   time.Time
}

// SettingPatch holds optional setting changes.
type SettingPatch struct {
	Value       *string
	Description *string
}
