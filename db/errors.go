package db

import "github.com/pkg/errors"

// Sentinel errors returned by the stores. Handlers map these onto the
// API error taxonomy.
var (
	ErrNotFound         = errors.New("not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrProfileExists    = errors.New("profile already exists")
	ErrHashtagExists    = errors.New("hashtag already exists")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
	ErrInvalidToken     = errors.New("invalid token")
)
