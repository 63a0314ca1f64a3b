package models

import "time"

// Profile holds a user's display profile, one row per user.
type Profile struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"size:64"`
	Bio       string `gorm:"size:255"`
	Photo     string `gorm:"type:text"` // data URL or remote URL
	CreatedAt time.Time
	UpdatedAt time.Time
}
