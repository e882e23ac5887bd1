package domain

import (
	"time"

	"github.com/google/uuid"
)

// Like is a directional expression of interest. It is created once and
// never mutated or deleted; repeating the action is a conflict.
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LikerID   uuid.UUID `json:"likerId" gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair"`
	LikedID   uuid.UUID `json:"likedId" gorm:"type:uuid;not null;uniqueIndex:idx_likes_pair"`
	CreatedAt time.Time `json:"createdAt"`

	Liker *User `json:"-" gorm:"foreignKey:LikerID"`
	Liked *User `json:"-" gorm:"foreignKey:LikedID"`
}
