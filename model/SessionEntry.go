package model

import (
	"time"
)

// SessionEntry is one key of the client's persistent key-value storage.
// The session token lives under the "user-token" key.
type SessionEntry struct {
	Key       string    `gorm:"size:100;primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
