package service

import (
	"context"
	"errors"

	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/metrics"
	"github.com/devmatch/backend/internal/ratelimit"
	"github.com/devmatch/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SwipeService records likes and turns mutual likes into matches.
type SwipeService struct {
	userRepo  repository.UserRepository
	likeRepo  repository.LikeRepository
	matchRepo repository.MatchRepository
	limiter   *ratelimit.Limiter
}

func NewSwipeService(userRepo repository.UserRepository, likeRepo repository.LikeRepository, matchRepo repository.MatchRepository, limiter *ratelimit.Limiter) *SwipeService {
	return &SwipeService{
		userRepo:  userRepo,
		likeRepo:  likeRepo,
		matchRepo: matchRepo,
		limiter:   limiter,
	}
}

type LikeResult struct {
	Like    *domain.Like
	IsMatch bool
	Match   *domain.Match
}

// RecordLike persists a directional like and, when the reverse like
// already exists, commits the match for the canonical pair. The
// reciprocity commit is idempotent: if both sides race past the reverse
// check, the unique index picks a single winner and the loser returns
// the same match instead of an error.
func (s *SwipeService) RecordLike(ctx context.Context, likerID, likedID uuid.UUID) (*LikeResult, error) {
	if likerID == likedID {
		return nil, domain.ErrSelfLike
	}

	if s.limiter != nil {
		_, ok, err := s.limiter.AllowLike(ctx, likerID)
		if err != nil {
			// The limiter is an abuse control, not a correctness
			// dependency; a broken redis must not block likes.
			log.Warn().Err(err).Msg("like rate limiter unavailable")
		} else if !ok {
			return nil, domain.ErrRateLimited
		}
	}

	if _, err := s.userRepo.GetByID(ctx, likedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	like := &domain.Like{
		ID:      uuid.New(),
		LikerID: likerID,
		LikedID: likedID,
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyLiked
		}
		return nil, err
	}
	metrics.LikesTotal.Inc()

	reciprocal, err := s.likeRepo.Exists(ctx, likedID, likerID)
	if err != nil {
		return nil, err
	}
	if !reciprocal {
		return &LikeResult{Like: like}, nil
	}

	lowID, highID := domain.CanonicalPair(likerID, likedID)
	match, created, err := s.matchRepo.CreateIfAbsent(ctx, lowID, highID)
	if err != nil {
		return nil, err
	}
	if created {
		metrics.MatchesTotal.Inc()
		log.Info().
			Str("match_id", match.ID.String()).
			Str("user_low", lowID.String()).
			Str("user_high", highID.String()).
			Msg("match created")
	}

	return &LikeResult{Like: like, IsMatch: true, Match: match}, nil
}

// MatchWithUser is a match annotated with the other participant, the
// shape the match list renders from.
type MatchWithUser struct {
	Match *domain.Match
	Other *domain.User
}

func (s *SwipeService) ListMatches(ctx context.Context, userID uuid.UUID) ([]*MatchWithUser, error) {
	matches, err := s.matchRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*MatchWithUser, 0, len(matches))
	for _, m := range matches {
		other := m.UserHigh
		if m.UserHighID == userID {
			other = m.UserLow
		}
		result = append(result, &MatchWithUser{Match: m, Other: other})
	}
	return result, nil
}
