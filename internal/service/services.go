package service

import (
	"github.com/devmatch/backend/internal/config"
	"github.com/devmatch/backend/internal/ratelimit"
	"github.com/devmatch/backend/internal/repository"
)

type Services struct {
	Auth      *AuthService
	Swipe     *SwipeService
	Discovery *DiscoveryService
	Chat      *ChatService
	Profile   *ProfileService
}

func NewServices(repos *repository.Repositories, limiter *ratelimit.Limiter, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, repos.Session, cfg),
		Swipe:     NewSwipeService(repos.User, repos.Like, repos.Match, limiter),
		Discovery: NewDiscoveryService(repos.User, repos.Like, repos.Match),
		Chat:      NewChatService(repos.Match, repos.Message),
		Profile:   NewProfileService(repos.User, repos.Technology),
	}
}
