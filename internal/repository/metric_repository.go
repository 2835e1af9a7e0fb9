package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"healthmon/internal/model"
)

// DailyTotals holds the aggregated metric values for one calendar date.
// Heart rate is a point-in-time reading and is never summed.
type DailyTotals struct {
	Steps    int64
	Calories float64
}

// MetricRepository defines health metric persistence operations.
type MetricRepository interface {
	Create(ctx context.Context, metric *model.HealthMetric) error
	ListByUser(ctx context.Context, userID uint, skip, limit int) ([]model.HealthMetric, error)
	DeleteByIDAndUser(ctx context.Context, id, userID uint) (int64, error)
	SumForDate(ctx context.Context, userID uint, date time.Time) (*DailyTotals, error)
}

type metricRepository struct {
	db *gorm.DB
}

// NewMetricRepository builds a GORM-backed repository.
func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db}
}

func (r *metricRepository) Create(ctx context.Context, metric *model.HealthMetric) error {
	return r.db.WithContext(ctx).Create(metric).Error
}

func (r *metricRepository) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]model.HealthMetric, error) {
	var metrics []model.HealthMetric
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

// DeleteByIDAndUser removes the metric and reports how many rows matched.
// Zero means the metric does not exist or belongs to another user; the two
// cases are indistinguishable on purpose.
func (r *metricRepository) DeleteByIDAndUser(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.HealthMetric{})
	return res.RowsAffected, res.Error
}

func (r *metricRepository) SumForDate(ctx context.Context, userID uint, date time.Time) (*DailyTotals, error) {
	var totals DailyTotals
	if err := r.db.WithContext(ctx).
		Model(&model.HealthMetric{}).
		Select("COALESCE(SUM(steps), 0) AS steps, COALESCE(SUM(calories), 0) AS calories").
		Where("user_id = ? AND date = ?", userID, model.Day(date)).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return &totals, nil
}
