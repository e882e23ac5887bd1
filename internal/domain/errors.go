package domain

import "errors"

// Swipe errors
var (
	ErrSelfLike     = errors.New("cannot like yourself")
	ErrAlreadyLiked = errors.New("user already liked")
	ErrUserNotFound = errors.New("user not found")
	ErrRateLimited  = errors.New("like rate limit reached")
)

// Chat errors
var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrNotParticipant = errors.New("user is not part of this match")
	ErrEmptyMessage   = errors.New("message content is empty")
)

// Profile errors
var (
	ErrTechNotFound   = errors.New("technology not found")
	ErrTechAlreadySet = errors.New("technology already on stack")
	ErrTechNotOnStack = errors.New("technology not on stack")
)
