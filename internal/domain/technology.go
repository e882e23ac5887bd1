package domain

import (
	"time"

	"github.com/google/uuid"
)

type TechType string

const (
	TechTypeLanguage  TechType = "language"
	TechTypeFramework TechType = "framework"
	TechTypeDatabase  TechType = "database"
	TechTypeTool      TechType = "tool"
	TechTypeCloud     TechType = "cloud"
)

// Technology is a catalog entry users can add to their tech stack.
type Technology struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Type      TechType  `json:"type" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}
