package games

import (
	"context"
	"errors"
	"strings"
	"time"

	"pixel-pet/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const defaultHistoryLimit = 20

type Service struct {
	repo Repository
	pets *pets.Service
	now  func() time.Time
}

func NewService(repo Repository, petsSvc *pets.Service) *Service {
	return &Service{
		repo: repo,
		pets: petsSvc,
		now:  time.Now,
	}
}

// SubmitResult acredita el resultado de un minijuego terminado: resuelve
// la recompensa sobre el estado reconciliado, aplica nivel/monedas vía el
// módulo de mascotas y agrega la sesión inmutable al historial.
func (s *Service) SubmitResult(ctx context.Context, petID string, gameType GameType, outcome Outcome) (pets.Pet, []string, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || gameType == "" || !outcome.valid() {
		return pets.Pet{}, nil, ErrInvalidInput
	}

	var granted Reward
	pet, events, err := s.pets.ApplyGameReward(ctx, petID, func(p pets.Pet) pets.GameReward {
		granted = Resolve(outcome, p.Stage)
		return pets.GameReward{
			Experience: granted.Experience,
			Coins:      granted.Coins,
			Won:        outcome == OutcomeWin,
			Lost:       outcome == OutcomeLose,
		}
	})
	if err != nil {
		return pets.Pet{}, nil, err
	}

	session := GameSession{
		ID:               uuid.NewString(),
		PetID:            petID,
		GameType:         gameType,
		Outcome:          outcome,
		ExperienceGained: granted.Experience,
		CoinsGained:      granted.Coins,
		PlayedAt:         s.now(),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		// La recompensa ya commiteó; el historial es auditoría, no fuente
		// de verdad. Se devuelve el error para que el caller lo loguee.
		return pet, events, err
	}

	return pet, events, nil
}

// History lista las últimas sesiones jugadas, más reciente primero.
func (s *Service) History(ctx context.Context, petID string, limit int) ([]GameSession, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.repo.ListByPet(ctx, petID, limit)
}
