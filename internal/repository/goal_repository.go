package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"healthmon/internal/model"
)

// GoalRepository defines goal persistence operations.
type GoalRepository interface {
	Upsert(ctx context.Context, goal *model.Goal) error
	FindByUserAndType(ctx context.Context, userID uint, metricType string) (*model.Goal, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository builds a GORM-backed repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

// Upsert inserts the goal or, when one already exists for (user_id,
// metric_type), updates its target in place. The conflict clause rides on the
// composite unique index, so two concurrent upserts cannot both insert.
func (r *goalRepository) Upsert(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "metric_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_value", "updated_at"}),
		}).
		Create(goal).Error
}

func (r *goalRepository) FindByUserAndType(ctx context.Context, userID uint, metricType string) (*model.Goal, error) {
	var goal model.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND metric_type = ?", userID, metricType).
		First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) ListByUser(ctx context.Context, userID uint) ([]model.Goal, error) {
	var goals []model.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}
