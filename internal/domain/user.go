package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID                uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email             string                      `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash      string                      `json:"-" gorm:"not null"`
	Name              string                      `json:"name" gorm:"not null"`
	Bio               string                      `json:"bio"`
	Age               *int                        `json:"age"`
	Gender            string                      `json:"gender"`
	Role              string                      `json:"role"`
	YearsOfExperience *int                        `json:"yearsOfExperience"`
	GithubURL         string                      `json:"githubUrl"`
	TechStack         datatypes.JSONSlice[string] `json:"techStack" gorm:"type:jsonb"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}

// PublicUser is the profile shape exposed to other users.
type PublicUser struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Bio               string    `json:"bio"`
	Age               *int      `json:"age"`
	Gender            string    `json:"gender"`
	Role              string    `json:"role"`
	YearsOfExperience *int      `json:"yearsOfExperience"`
	GithubURL         string    `json:"githubUrl"`
	TechStack         []string  `json:"techStack"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:                u.ID,
		Name:              u.Name,
		Bio:               u.Bio,
		Age:               u.Age,
		Gender:            u.Gender,
		Role:              u.Role,
		YearsOfExperience: u.YearsOfExperience,
		GithubURL:         u.GithubURL,
		TechStack:         u.TechStack,
	}
}

// HasTech reports whether the technology is already on the user's stack.
func (u *User) HasTech(name string) bool {
	for _, t := range u.TechStack {
		if t == name {
			return true
		}
	}
	return false
}
