package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Passwords are stored as bcrypt hashes and
// never serialized.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
