package storage

import (
	"context"

	apperrors "github.com/louisbranch/zenithfall/internal/platform/errors"
	"github.com/louisbranch/zenithfall/internal/services/game/player"
)

// ErrPlayerIDRequired rejects blank player identifiers.
var ErrPlayerIDRequired = apperrors.New(apperrors.CodeInvalidInput, "player id is required")

// PlayerStore owns every player's state.
type PlayerStore interface {
	// Update runs fn against the player's state while holding that player's
	// exclusive lock, creating the state on first access. Changes made by fn
	// are kept even when fn returns an error.
	Update(ctx context.Context, playerID string, fn func(*player.State) error) error
	// View returns a copy of the player's state, creating it on first access.
	View(ctx context.Context, playerID string) (*player.State, error)
}
