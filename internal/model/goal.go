package model

import "time"

// Goal is a per-user daily target for one metric type. The composite unique
// index keeps at most one goal per (user, metric type); writes go through a
// conflict-resolving upsert.
type Goal struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_goal_user_metric;not null"`
	MetricType  string    `json:"metric_type" gorm:"uniqueIndex:idx_goal_user_metric;size:50;not null"`
	TargetValue int       `json:"target_value" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
