package games

import "context"

type Repository interface {
	// Create agrega la sesión al log; nunca hay update ni delete.
	Create(ctx context.Context, s GameSession) error
	ListByPet(ctx context.Context, petID string, limit int) ([]GameSession, error)
}
