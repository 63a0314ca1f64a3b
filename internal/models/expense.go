package models

import "time"

// Expense is a single spending record owned by exactly one user.
type Expense struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Title     string    `gorm:"size:128;not null"`
	Category  string    `gorm:"size:32;index;not null"`
	Amount    float64   `gorm:"not null"`
	Date      time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
