package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrNodeBudget        = errors.New("node budget exceeded")
	ErrSourceUnavailable = errors.New("topic source unavailable")
	ErrDegenerateBranch  = errors.New("answer path has no candidates")
	ErrNoActiveGame      = errors.New("no active game")
)
