package service

import (
	"context"
	"errors"

	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscoveryService assembles the candidate pool and exclusion set and
// delegates the actual ordering to the pure ranker. Pass/dismiss is a
// client-local filter and is deliberately not persisted here, so a
// passed profile resurfaces on the next call.
type DiscoveryService struct {
	userRepo  repository.UserRepository
	likeRepo  repository.LikeRepository
	matchRepo repository.MatchRepository
}

func NewDiscoveryService(userRepo repository.UserRepository, likeRepo repository.LikeRepository, matchRepo repository.MatchRepository) *DiscoveryService {
	return &DiscoveryService{
		userRepo:  userRepo,
		likeRepo:  likeRepo,
		matchRepo: matchRepo,
	}
}

func (s *DiscoveryService) Discover(ctx context.Context, userID uuid.UUID) ([]domain.ScoredCandidate, error) {
	self, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	likedIDs, err := s.likeRepo.LikedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	matchedIDs, err := s.matchRepo.PartnerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	excluded := make(map[uuid.UUID]struct{}, len(likedIDs)+len(matchedIDs)+1)
	excluded[userID] = struct{}{}
	for _, id := range likedIDs {
		excluded[id] = struct{}{}
	}
	for _, id := range matchedIDs {
		excluded[id] = struct{}{}
	}

	candidates, err := s.userRepo.ListExcept(ctx, userID)
	if err != nil {
		return nil, err
	}

	return domain.RankCandidates(self, candidates, excluded), nil
}
