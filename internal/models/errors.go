package models

import (
	"errors"
	"fmt"
)

// ErrNoViableModel is returned by a predict call when every registered
// model was excluded (error, invalid probability, or timeout). The game is
// left without predictions rather than given a fabricated one.
var ErrNoViableModel = errors.New("no viable model output")

// ErrNotFound is returned by store lookups for unknown identities.
var ErrNotFound = errors.New("not found")

// IntegrityError rejects a write that would alter an immutable field or
// revert a completion flag. It is always surfaced, never swallowed.
type IntegrityError struct {
	GameID string
	Field  string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("game %s: immutable field %q cannot change once set", e.GameID, e.Field)
}

// ProviderError marks a transient per-game provider failure during
// reconcile. It isolates the failed identifier so the rest of the batch
// proceeds and the caller can retry the named game.
type ProviderError struct {
	GameID string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider fetch for game %s: %v", e.GameID, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
