package models

import (
	"time"

	"github.com/google/uuid"
)

// Entity ของตาราง public.profiles — mirror of the auth.users record,
// created once by the signup trigger and never inserted by the API.
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
