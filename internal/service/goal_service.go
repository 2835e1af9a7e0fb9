package service

import (
	"context"
	"fmt"
	"time"

	"healthmon/internal/model"
	"healthmon/internal/repository"
)

// GoalProgress compares today's aggregated metric total against a target.
// Percentage is uncapped and may exceed 100; a non-positive target yields 0
// instead of dividing by zero.
type GoalProgress struct {
	MetricType   string  `json:"metric_type"`
	TargetValue  int     `json:"target_value"`
	CurrentValue float64 `json:"current_value"`
	Percentage   float64 `json:"percentage"`
}

// GoalService exposes goal upsert and progress computation.
type GoalService interface {
	UpsertGoal(ctx context.Context, userID uint, metricType string, targetValue int) (*model.Goal, error)
	Progress(ctx context.Context, userID uint, now time.Time) ([]GoalProgress, error)
}

type goalService struct {
	goals   repository.GoalRepository
	metrics repository.MetricRepository
}

// NewGoalService builds a GoalService.
func NewGoalService(goals repository.GoalRepository, metrics repository.MetricRepository) GoalService {
	return &goalService{goals: goals, metrics: metrics}
}

// UpsertGoal creates the goal or updates the target of the existing one for
// (user, metric type). metric_type is stored as given; unknown types simply
// never accumulate progress.
func (s *goalService) UpsertGoal(ctx context.Context, userID uint, metricType string, targetValue int) (*model.Goal, error) {
	goal := &model.Goal{
		UserID:      userID,
		MetricType:  metricType,
		TargetValue: targetValue,
	}
	if err := s.goals.Upsert(ctx, goal); err != nil {
		return nil, fmt.Errorf("upsert goal: %w", err)
	}

	// Re-read so the update branch returns the row's real id and timestamps.
	persisted, err := s.goals.FindByUserAndType(ctx, userID, metricType)
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	return persisted, nil
}

// Progress aggregates today's metric rows once and maps the sums onto each of
// the user's goals. Heart rate is never part of goal progress.
func (s *goalService) Progress(ctx context.Context, userID uint, now time.Time) ([]GoalProgress, error) {
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	totals, err := s.metrics.SumForDate(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("sum metrics: %w", err)
	}

	results := make([]GoalProgress, 0, len(goals))
	for _, goal := range goals {
		var current float64
		switch goal.MetricType {
		case model.MetricTypeSteps:
			current = float64(totals.Steps)
		case model.MetricTypeCalories:
			current = totals.Calories
		}

		percentage := 0.0
		if goal.TargetValue > 0 {
			percentage = current / float64(goal.TargetValue) * 100
		}

		results = append(results, GoalProgress{
			MetricType:   goal.MetricType,
			TargetValue:  goal.TargetValue,
			CurrentValue: current,
			Percentage:   percentage,
		})
	}
	return results, nil
}
