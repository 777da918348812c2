package models

import (
	"time"

	"github.com/google/uuid"
)

// Preference represents the single default currency pair stored per user.
// The primary key doubles as the foreign key to public.profiles, so at most
// one row exists per profile.
type Preference struct {
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	DefaultFrom string    `json:"default_from" db:"default_from"`
	DefaultTo   string    `json:"default_to" db:"default_to"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
