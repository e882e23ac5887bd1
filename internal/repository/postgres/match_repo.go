package postgres

import (
	"context"

	"github.com/devmatch/backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *matchRepository {
	return &matchRepository{db: db}
}

// CreateIfAbsent is the race-safe reciprocity commit: the conditional
// insert rides on the unique index over (user_low_id, user_high_id), so
// two concurrent creates for the same pair cannot both win. The loser's
// insert is a no-op and the surviving row is read back, which makes the
// operation idempotent for callers.
func (r *matchRepository) CreateIfAbsent(ctx context.Context, lowID, highID uuid.UUID) (*domain.Match, bool, error) {
	match := &domain.Match{
		ID:         uuid.New(),
		UserLowID:  lowID,
		UserHighID: highID,
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_low_id"}, {Name: "user_high_id"}},
			DoNothing: true,
		}).
		Create(match)
	if res.Error != nil {
		return nil, false, res.Error
	}

	created := res.RowsAffected > 0
	if created {
		return match, true, nil
	}

	var existing domain.Match
	err := r.db.WithContext(ctx).
		First(&existing, "user_low_id = ? AND user_high_id = ?", lowID, highID).Error
	if err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error) {
	var matches []*domain.Match
	err := r.db.WithContext(ctx).
		Preload("UserLow").
		Preload("UserHigh").
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// PartnerIDs only needs the id columns, so it skips the user preloads
// that GetByUserID carries for the match list.
func (r *matchRepository) PartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var pairs []domain.Match
	err := r.db.WithContext(ctx).
		Select("user_low_id", "user_high_id").
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Find(&pairs).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(pairs))
	for _, m := range pairs {
		ids = append(ids, m.OtherUserID(userID))
	}
	return ids, nil
}
