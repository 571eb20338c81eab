// Package memory provides the in-process player state store.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/louisbranch/zenithfall/internal/services/game/player"
	"github.com/louisbranch/zenithfall/internal/services/game/storage"
)

type entry struct {
	mu    sync.Mutex
	state *player.State
}

// Store keeps player state in memory. Entries are created lazily and never
// evicted.
type Store struct {
	mu      sync.Mutex
	players map[string]*entry
}

var _ storage.PlayerStore = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{players: map[string]*entry{}}
}

func (s *Store) entry(playerID string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.players[playerID]
	if !ok {
		e = &entry{state: player.New(playerID)}
		s.players[playerID] = e
	}
	return e
}

// Update runs fn under the player's lock.
func (s *Store) Update(ctx context.Context, playerID string, fn func(*player.State) error) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return storage.ErrPlayerIDRequired
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e := s.entry(playerID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// View returns a copy of the player's state.
func (s *Store) View(ctx context.Context, playerID string) (*player.State, error) {
	var out *player.State
	err := s.Update(ctx, playerID, func(state *player.State) error {
		out = state.Clone()
		return nil
	})
	return out, err
}

// Len returns the number of known players.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}
