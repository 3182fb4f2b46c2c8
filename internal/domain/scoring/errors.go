package scoring

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyTranscript = errors.New("Transcript cannot be empty")          //nolint:staticcheck // message is part of the API contract
	ErrInvalidDuration = errors.New("Duration must be a positive integer") //nolint:staticcheck // message is part of the API contract
	ErrEvaluation      = errors.New("evaluation failed")
)
