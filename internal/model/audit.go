package model

import "time"

// AuditEntry records a tweet lifecycle event consumed from the broker.
type AuditEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	EntityID  string    `gorm:"size:36;not null;index" json:"entity_id"`
	ActorID   string    `gorm:"size:36" json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}
