package sweep

import "errors"

// Engine failures are deterministic validation errors. Callers distinguish
// them with errors.Is; the service layer maps them to response codes.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrOutOfBounds          = errors.New("cell position out of bounds")
	ErrInvalidState         = errors.New("game is over")
	ErrAlreadyRevealed      = errors.New("cell is already revealed")
	ErrCellFlagged          = errors.New("cell is flagged")
	ErrCellRevealed         = errors.New("cell is revealed")
	ErrAlreadyFlagged       = errors.New("cell is already flagged")
	ErrNotFlagged           = errors.New("cell is not flagged")
	ErrSessionNotFound      = errors.New("game session not found")
	ErrScoringIneligible    = errors.New("game is not eligible for scoring")
)
