package repository

import (
	"context"
	"errors"

	"planhub/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SprintRepository interface {
	Create(ctx context.Context, sprint *entity.Sprint) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Sprint, error)
	Update(ctx context.Context, sprint *entity.Sprint) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Sprint, error)
}

type sprintRepository struct {
	db *gorm.DB
}

func NewSprintRepository(db *gorm.DB) SprintRepository {
	return &sprintRepository{db: db}
}

func (r *sprintRepository) Create(ctx context.Context, s *entity.Sprint) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sprintRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sprint, error) {
	var sprint entity.Sprint
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sprint).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sprint, nil
}

func (r *sprintRepository) Update(ctx context.Context, s *entity.Sprint) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sprintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Sprint{}).
		Error
}

func (r *sprintRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]entity.Sprint, error) {
	var sprints []entity.Sprint
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("start_date ASC").
		Find(&sprints).Error
	if err != nil {
		return nil, err
	}
	return sprints, nil
}
