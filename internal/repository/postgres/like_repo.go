package postgres

import (
	"context"

	"github.com/devmatch/backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Exists(ctx context.Context, likerID, likedID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("liker_id = ? AND liked_id = ?", likerID, likedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) LikedIDs(ctx context.Context, likerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("liker_id = ?", likerID).
		Pluck("liked_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
