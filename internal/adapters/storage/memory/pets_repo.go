package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pixel-pet/internal/domain/pets"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

// Update compara versiones: la carrera entre dos secuencias
// reconcile-act-save sobre la misma mascota la pierde el que llega tarde.
func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	stored, exists := r.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}
	if stored.Version != p.Version {
		return pets.ErrConflict
	}
	p.Version++
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) GetActiveByUser(ctx context.Context, userID string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Los registros expirados quedan como historial; a lo sumo uno vivo.
	var winner pets.Pet
	has := false
	for _, p := range r.byID {
		if p.UserID != userID || !p.Alive() {
			continue
		}
		if !has || p.BirthTime.After(winner.BirthTime) {
			winner = p
			has = true
		}
	}
	if !has {
		return pets.Pet{}, pets.ErrNotFound
	}
	return winner, nil
}
