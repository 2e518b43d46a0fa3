package model

import "time"

// Author is a denormalized copy of the posting user's public profile.
// A tweet keeps this snapshot instead of owning its author: deleting a
// tweet never touches the user record.
type Author struct {
	UserID    string `gorm:"size:36;index" json:"user_id"`
	Email     string `gorm:"size:128" json:"email"`
	FirstName string `gorm:"size:25" json:"first_name"`
	LastName  string `gorm:"size:25" json:"last_name"`
}

type Tweet struct {
	ID            string     `gorm:"primaryKey;size:36" json:"tweet_id"`
	Content       string     `gorm:"size:256;not null" json:"content"`
	By            Author     `gorm:"embedded;embeddedPrefix:by_" json:"by"`
	SchemaVersion int        `gorm:"not null;default:1" json:"schema_version"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}
