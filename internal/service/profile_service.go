package service

import (
	"context"
	"errors"
	"time"

	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	userRepo repository.UserRepository
	techRepo repository.TechnologyRepository
}

func NewProfileService(userRepo repository.UserRepository, techRepo repository.TechnologyRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		techRepo: techRepo,
	}
}

type UpdateProfileInput struct {
	Name              *string
	Bio               *string
	Age               *int
	Gender            *string
	Role              *string
	YearsOfExperience *int
	GithubURL         *string
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Age != nil {
		user.Age = input.Age
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.YearsOfExperience != nil {
		user.YearsOfExperience = input.YearsOfExperience
	}
	if input.GithubURL != nil {
		user.GithubURL = *input.GithubURL
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.getUser(ctx, userID)
}

// AddTechnology appends a catalog technology to the user's stack.
func (s *ProfileService) AddTechnology(ctx context.Context, userID uuid.UUID, name string) (*domain.User, error) {
	tech, err := s.techRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTechNotFound
		}
		return nil, err
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasTech(tech.Name) {
		return nil, domain.ErrTechAlreadySet
	}

	user.TechStack = append(user.TechStack, tech.Name)
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) RemoveTechnology(ctx context.Context, userID uuid.UUID, name string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasTech(name) {
		return nil, domain.ErrTechNotOnStack
	}

	kept := user.TechStack[:0]
	for _, t := range user.TechStack {
		if t != name {
			kept = append(kept, t)
		}
	}
	user.TechStack = kept
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) ListTechnologies(ctx context.Context) ([]*domain.Technology, error) {
	return s.techRepo.GetAll(ctx)
}

func (s *ProfileService) getUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
