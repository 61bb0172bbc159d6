package pets

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// saveRetries acota el reintento de la secuencia load→reconcile→act→save
// cuando el store detecta una carrera (ErrConflict).
const saveRetries = 3

type Service struct {
	repo  Repository
	items ItemStore
	now   func() time.Time
}

func NewService(repo Repository, items ItemStore) *Service {
	return &Service{
		repo:  repo,
		items: items,
		now:   time.Now,
	}
}

// Create pone un huevo nuevo para el usuario. A lo sumo una mascota viva
// por usuario; el kit inicial (medicina + juguete) se otorga acá.
func (s *Service) Create(ctx context.Context, userID, name string) (Pet, error) {
	userID = strings.TrimSpace(userID)
	name = strings.TrimSpace(name)
	if userID == "" {
		return Pet{}, ErrInvalidInput
	}
	if name == "" {
		name = "Tamagotchi"
	}

	if existing, err := s.repo.GetActiveByUser(ctx, userID); err == nil && existing.Alive() {
		return Pet{}, ErrAlreadyExists
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return Pet{}, err
	}

	p := NewPet(uuid.NewString(), userID, name, s.now())
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	if err := s.items.GrantStarterKit(ctx, p.ID); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// GetByUser reconcilia y devuelve la mascota viva del usuario. La
// reconciliación se persiste también en lecturas: last_update avanza.
func (s *Service) GetByUser(ctx context.Context, userID string) (Pet, []string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Pet{}, nil, ErrInvalidInput
	}

	p, err := s.repo.GetActiveByUser(ctx, userID)
	if err != nil {
		return Pet{}, nil, err
	}
	return s.mutate(ctx, p.ID, noMutation)
}

// GetByID reconcilia y devuelve una mascota puntual (viva o expirada).
func (s *Service) GetByID(ctx context.Context, petID string) (Pet, []string, error) {
	return s.mutate(ctx, strings.TrimSpace(petID), noMutation)
}

// OwnerOf expone el dueño sin reconciliar; lo usan los handlers de otros
// módulos para el chequeo de ownership sin tocar el estado.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.UserID, nil
}

// PerformAction ejecuta una acción de cuidado: reconcilia, aplica el delta
// de la tabla fija y corre el pase de transiciones post-acción.
//
// El consumo de inventario pasa antes del mutate (un consumo por acción,
// aunque el save reintente); si la secuencia no commitea, se devuelve.
func (s *Service) PerformAction(ctx context.Context, petID string, kind ActionKind, itemName string) (Pet, []string, error) {
	petID = strings.TrimSpace(petID)
	itemName = strings.TrimSpace(itemName)
	if petID == "" {
		return Pet{}, nil, ErrInvalidInput
	}

	premium := false
	consumed := ""

	switch kind {
	case ActionMedicine:
		if itemName == "" {
			itemName = MedicineItem
		}
		if err := s.items.Consume(ctx, petID, itemName, 1); err != nil {
			return Pet{}, nil, err
		}
		consumed, premium = itemName, true

	case ActionFeed:
		if itemName != "" {
			// Si hay stock del ítem se consume; si no, cae a la comida
			// básica sin costo de inventario.
			if err := s.items.Consume(ctx, petID, itemName, 1); err == nil {
				consumed, premium = itemName, true
			}
		}
	}

	pet, events, err := s.mutate(ctx, petID, func(p Pet, now time.Time) (Pet, []string, error) {
		res, aerr := applyAction(p, kind, now, premium)
		if aerr != nil {
			return Pet{}, nil, aerr
		}
		ev := res.events
		ev = append(ev, checkTransitions(&res.pet, now, floorTimes{}, false)...)
		return res.pet, ev, nil
	})
	if err != nil && consumed != "" {
		// La acción no aplicó: el ítem vuelve al inventario.
		_ = s.items.Refund(ctx, petID, consumed, 1)
	}
	return pet, events, err
}

// GameReward es el delta que entrega el resolver de minijuegos. No toca
// stats de cuidado: la recompensa queda ortogonal al camino de cuidado.
type GameReward struct {
	Experience int
	Coins      int
	Won        bool
	Lost       bool
}

// ApplyGameReward acredita experiencia/monedas y resuelve level-ups según
// la curva fija (umbral = nivel × 100), arrastrando el sobrante.
//
// resolve recibe el estado YA reconciliado: la recompensa puede depender
// de la etapa/nivel vigentes al momento de jugar.
func (s *Service) ApplyGameReward(ctx context.Context, petID string, resolve func(Pet) GameReward) (Pet, []string, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || resolve == nil {
		return Pet{}, nil, ErrInvalidInput
	}

	return s.mutate(ctx, petID, func(p Pet, now time.Time) (Pet, []string, error) {
		if p.Expired() {
			return Pet{}, nil, ErrInvalidState
		}

		r := resolve(p)
		if r.Experience < 0 || r.Coins < 0 {
			return Pet{}, nil, ErrInvalidInput
		}

		p.Experience += r.Experience
		p.Coins += r.Coins
		if r.Won {
			p.GamesWon++
		}
		if r.Lost {
			p.GamesLost++
		}

		var ev []string
		// Acotado por la magnitud de la experiencia, nunca un loop libre.
		for p.Experience >= levelThreshold(p.Level) {
			p.Experience -= levelThreshold(p.Level)
			p.Level++
			ev = append(ev, levelUpEvent(p.Level))
		}

		ev = append(ev, checkTransitions(&p, now, floorTimes{}, false)...)
		return p, ev, nil
	})
}

// Reset entierra una mascota expirada y pone un huevo nuevo, gratis. El
// registro viejo se conserva como historial (decisión documentada: Expired
// es terminal y el respawn es explícito, nunca automático).
func (s *Service) Reset(ctx context.Context, petID string) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Pet{}, ErrInvalidInput
	}

	old, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if old.Alive() {
		return Pet{}, ErrNotExpired
	}

	p := NewPet(uuid.NewString(), old.UserID, old.Name, s.now())
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	if err := s.items.GrantStarterKit(ctx, p.ID); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// mutate es la secuencia completa load→reconcile→fn→save, con reintento
// ante ErrConflict. O commitea todo o no persiste nada.
func (s *Service) mutate(ctx context.Context, petID string, fn func(p Pet, now time.Time) (Pet, []string, error)) (Pet, []string, error) {
	if petID == "" {
		return Pet{}, nil, ErrInvalidInput
	}

	var lastErr error
	for attempt := 0; attempt < saveRetries; attempt++ {
		p, err := s.repo.GetByID(ctx, petID)
		if err != nil {
			return Pet{}, nil, err
		}
		if !p.statsInBounds() {
			return Pet{}, nil, ErrCorruptState
		}

		now := s.now()
		loaded := p
		p, events := Reconcile(p, now)

		next, more, err := fn(p, now)
		if err != nil {
			return Pet{}, nil, err
		}
		events = append(events, more...)

		// Sin decay pendiente ni mutación no hay nada que guardar
		// (lecturas redundantes con el mismo now, registros expirados).
		if reflect.DeepEqual(next, loaded) {
			return next, events, nil
		}

		if err := s.repo.Update(ctx, next); err != nil {
			if errors.Is(err, ErrConflict) {
				lastErr = err
				continue
			}
			return Pet{}, nil, err
		}
		next.Version++
		return next, events, nil
	}
	return Pet{}, nil, lastErr
}

func noMutation(p Pet, _ time.Time) (Pet, []string, error) {
	return p, nil, nil
}

func levelThreshold(level int) int {
	return level * 100
}

func levelUpEvent(level int) string {
	return "level_up:" + strconv.Itoa(level)
}
