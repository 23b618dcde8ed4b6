package services

import "errors"

// Sentinel errors returned by the registry and ledger. Callers decide
// whether to surface them; state is never modified when one is returned.
var (
	ErrTableNotFound     = errors.New("table not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
)
