package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. History is ordered by
// (created_at, id); the id tie-break keeps the order total when two
// messages land in the same timestamp tick.
type Message struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MatchID   uuid.UUID `json:"matchId" gorm:"type:uuid;not null;index:idx_messages_match_time,priority:1"`
	SenderID  uuid.UUID `json:"senderId" gorm:"type:uuid;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_messages_match_time,priority:2"`

	Sender *User `json:"-" gorm:"foreignKey:SenderID"`
}
