package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// Match is the undirected record created exactly once when both
// directional likes exist between a pair. UserLowID < UserHighID under
// uuid byte order, so an unordered pair has a single representation and
// the unique index can dedupe racing creates.
type Match struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserLowID  uuid.UUID `json:"userLowId" gorm:"type:uuid;not null;uniqueIndex:idx_matches_pair"`
	UserHighID uuid.UUID `json:"userHighId" gorm:"type:uuid;not null;uniqueIndex:idx_matches_pair"`
	CreatedAt  time.Time `json:"createdAt"`

	UserLow  *User `json:"-" gorm:"foreignKey:UserLowID"`
	UserHigh *User `json:"-" gorm:"foreignKey:UserHighID"`
}

// CanonicalPair orders two user ids into the (low, high) representation.
func CanonicalPair(a, b uuid.UUID) (low, high uuid.UUID) {
	if bytes.Compare(a[:], b[:]) < 0 {
		return a, b
	}
	return b, a
}

// HasParticipant reports whether the user is one of the match's two sides.
func (m *Match) HasParticipant(userID uuid.UUID) bool {
	return m.UserLowID == userID || m.UserHighID == userID
}

// OtherUserID returns the participant that is not the given user.
func (m *Match) OtherUserID(userID uuid.UUID) uuid.UUID {
	if m.UserLowID == userID {
		return m.UserHighID
	}
	return m.UserLowID
}
