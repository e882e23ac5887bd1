package postgres

import (
	"context"

	"github.com/devmatch/backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type technologyRepository struct {
	db *gorm.DB
}

func NewTechnologyRepository(db *gorm.DB) *technologyRepository {
	return &technologyRepository{db: db}
}

func (r *technologyRepository) GetAll(ctx context.Context) ([]*domain.Technology, error) {
	var techs []*domain.Technology
	err := r.db.WithContext(ctx).
		Order("type ASC").
		Order("name ASC").
		Find(&techs).Error
	if err != nil {
		return nil, err
	}
	return techs, nil
}

func (r *technologyRepository) GetByName(ctx context.Context, name string) (*domain.Technology, error) {
	var tech domain.Technology
	err := r.db.WithContext(ctx).First(&tech, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &tech, nil
}

func (r *technologyRepository) UpsertMany(ctx context.Context, techs []*domain.Technology) error {
	if len(techs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"type"}),
		}).
		Create(&techs).Error
}
