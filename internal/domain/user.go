package domain

import "time"

// Account status values.
const (
	AccountActive    = "active"
	AccountSuspended = "suspended"
	AccountPending   = "pending"
)

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`

	Phone   string `db:"phone"`
	City    string `db:"city"`
	Address string `db:"address"`
	Avatar  string `db:"avatar"`

	BusinessName     string `db:"business_name"`
	BusinessVerified bool   `db:"business_verified"`

	EmailVerified        bool   `db:"email_verified"`
	NotificationsEnabled bool   `db:"notifications_enabled"`
	ProfileVisible       bool   `db:"profile_visible"`
	Language             string `db:"language"`
	Status               string `db:"status"` // active | suspended | pending

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ProfileUpdate carries optional profile changes; nil fields are untouched.
type ProfileUpdate struct {
	Name                 *string
	Phone                *string
	City                 *string
	Address              *string
	Avatar               *string
	BusinessName         *string
	NotificationsEnabled *bool
	ProfileVisible       *bool
	Language             *string
	Status               *string
}
