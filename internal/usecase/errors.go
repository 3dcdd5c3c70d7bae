package usecase

import "errors"

// Closed error kinds. Handlers map these to HTTP statuses; nothing at the
// API boundary inspects error strings.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDraftNotFound         = errors.New("draft not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrPlayerDrafted         = errors.New("player already drafted")
	ErrRosterFull            = errors.New("no roster slot available")
	ErrInvalidPosition       = errors.New("invalid position")
	ErrPickNotFound          = errors.New("pick not found")
	ErrNoActiveDraft         = errors.New("no active draft")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrModelUnavailable      = errors.New("prediction model unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
