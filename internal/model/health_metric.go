package model

import "time"

// HealthMetric is a single logged reading owned by a user. Several entries
// may share the same calendar date; rows are inserted and deleted, never
// updated in place.
type HealthMetric struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Date      time.Time `json:"date" gorm:"type:date;index;not null"`
	Steps     int       `json:"steps"`
	Calories  float64   `json:"calories"`
	HeartRate int       `json:"heart_rate"`
	CreatedAt time.Time `json:"created_at"`
}

// Metric types a goal can target.
const (
	MetricTypeSteps    = "steps"
	MetricTypeCalories = "calories"
)

// Day truncates t to midnight UTC, the canonical form stored in the date column.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
