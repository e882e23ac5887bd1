package repository

import (
	"context"

	"github.com/devmatch/backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListExcept(ctx context.Context, userID uuid.UUID) ([]*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type TechnologyRepository interface {
	GetAll(ctx context.Context) ([]*domain.Technology, error)
	GetByName(ctx context.Context, name string) (*domain.Technology, error)
	UpsertMany(ctx context.Context, techs []*domain.Technology) error
}

type LikeRepository interface {
	// Create inserts the like; a duplicate (liker, liked) pair surfaces
	// as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, like *domain.Like) error
	Exists(ctx context.Context, likerID, likedID uuid.UUID) (bool, error)
	LikedIDs(ctx context.Context, likerID uuid.UUID) ([]uuid.UUID, error)
}

type MatchRepository interface {
	// CreateIfAbsent inserts a match for the canonical pair unless one
	// already exists, and returns the surviving row either way.
	CreateIfAbsent(ctx context.Context, lowID, highID uuid.UUID) (*domain.Match, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Match, error)
	PartnerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByMatchID(ctx context.Context, matchID uuid.UUID) ([]*domain.Message, error)
	LastByMatchID(ctx context.Context, matchID uuid.UUID) (*domain.Message, error)
}

type Repositories struct {
	User       UserRepository
	Session    SessionRepository
	Technology TechnologyRepository
	Like       LikeRepository
	Match      MatchRepository
	Message    MessageRepository
}
