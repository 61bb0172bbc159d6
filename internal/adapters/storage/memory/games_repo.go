package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pixel-pet/internal/domain/games"
)

type gamesRepo struct {
	mu    sync.RWMutex
	byPet map[string][]games.GameSession
}

func NewGamesRepo() games.Repository {
	return &gamesRepo{
		byPet: make(map[string][]games.GameSession),
	}
}

func (r *gamesRepo) Create(ctx context.Context, s games.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	// Append-only: no hay update ni delete sobre el historial.
	r.byPet[s.PetID] = append(r.byPet[s.PetID], s)
	return nil
}

func (r *gamesRepo) ListByPet(ctx context.Context, petID string, limit int) ([]games.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := r.byPet[petID]
	out := make([]games.GameSession, len(sessions))
	copy(out, sessions)

	// Más reciente primero.
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlayedAt.After(out[j].PlayedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
