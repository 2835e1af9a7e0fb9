package service

import (
	"context"
	"fmt"
	"time"

	apperrors "healthmon/internal/errors"
	"healthmon/internal/model"
	"healthmon/internal/repository"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// MetricService exposes health metric operations scoped to one user.
type MetricService interface {
	CreateMetric(ctx context.Context, userID uint, date time.Time, steps int, calories float64, heartRate int) (*model.HealthMetric, error)
	ListMetrics(ctx context.Context, userID uint, skip, limit int) ([]model.HealthMetric, error)
	DeleteMetric(ctx context.Context, userID, metricID uint) error
}

type metricService struct {
	repo repository.MetricRepository
}

// NewMetricService builds a MetricService.
func NewMetricService(repo repository.MetricRepository) MetricService {
	return &metricService{repo: repo}
}

// CreateMetric always inserts a new row; multiple entries per day are allowed.
func (s *metricService) CreateMetric(ctx context.Context, userID uint, date time.Time, steps int, calories float64, heartRate int) (*model.HealthMetric, error) {
	metric := &model.HealthMetric{
		UserID:    userID,
		Date:      model.Day(date),
		Steps:     steps,
		Calories:  calories,
		HeartRate: heartRate,
	}
	if err := s.repo.Create(ctx, metric); err != nil {
		return nil, fmt.Errorf("create metric: %w", err)
	}
	return metric, nil
}

// ListMetrics returns the user's metrics in ascending id order.
func (s *metricService) ListMetrics(ctx context.Context, userID uint, skip, limit int) ([]model.HealthMetric, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	metrics, err := s.repo.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return metrics, nil
}

// DeleteMetric removes the metric when it exists and belongs to the caller.
func (s *metricService) DeleteMetric(ctx context.Context, userID, metricID uint) error {
	affected, err := s.repo.DeleteByIDAndUser(ctx, metricID, userID)
	if err != nil {
		return fmt.Errorf("delete metric: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrMetricNotFound
	}
	return nil
}
