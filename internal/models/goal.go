package models

import "time"

// Goal is a per-user monthly spending goal. Month is stored as "YYYY-MM".
type Goal struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"uniqueIndex:idx_goal_user_month;not null"`
	Month     string  `gorm:"size:7;uniqueIndex:idx_goal_user_month;not null"`
	Amount    float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
