package model

import "time"

// SchemaVersion tags every persisted record so the storage format can
// evolve without guessing which layout an old row uses.
const SchemaVersion = 1

type User struct {
	ID            string    `gorm:"primaryKey;size:36" json:"user_id"`
	Email         string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	FirstName     string    `gorm:"size:25;not null" json:"first_name"`
	LastName      string    `gorm:"size:25;not null" json:"last_name"`
	BirthDate     *Date     `gorm:"type:date" json:"birth_date"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	SchemaVersion int       `gorm:"not null;default:1" json:"schema_version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PublicProfile is the read-only author snapshot embedded in tweets.
func (u *User) PublicProfile() Author {
	return Author{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
