package pets

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"pixel-pet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/pets", createPetHandler(svc))
	r.Get("/me/pet", getMyPetHandler(svc))

	r.Route("/pets/{petID}", func(pr chi.Router) {
		pr.Get("/", getPetHandler(svc))
		pr.Post("/actions", actionHandler(svc))
		pr.Post("/reset", resetHandler(svc))
	})
}

type createPetRequest struct {
	Name string `json:"name"`
}

type actionRequest struct {
	Action string `json:"action"`
	Item   string `json:"item,omitempty"`
}

// petResponse expone los stats redondeados a entero; la precisión del
// decay queda puertas adentro del engine.
type petResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`

	Stage      string `json:"stage"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`

	Hunger      int `json:"hunger"`
	Happiness   int `json:"happiness"`
	Cleanliness int `json:"cleanliness"`
	Health      int `json:"health"`
	Energy      int `json:"energy"`
	Discipline  int `json:"discipline"`

	IsSick     bool `json:"is_sick"`
	IsSleeping bool `json:"is_sleeping"`
	Expired    bool `json:"expired"`

	CareMistakes     int `json:"care_mistakes"`
	Coins            int `json:"coins"`
	GamesWon         int `json:"games_won"`
	GamesLost        int `json:"games_lost"`
	TrainingSessions int `json:"training_sessions"`

	BirthTime  time.Time  `json:"birth_time"`
	LastUpdate time.Time  `json:"last_update"`
	SleepStart *time.Time `json:"sleep_start,omitempty"`
}

type actionResponse struct {
	Pet    petResponse `json:"pet"`
	Events []string    `json:"events"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func getMyPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, events, err := svc.GetByUser(r.Context(), claims.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, actionResponse{Pet: toPetResponse(p), Events: emptyIfNil(events)})
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	// Solo el dueño ve a su mascota; acá no hay delegaciones.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		owner, err := svc.OwnerOf(r.Context(), petID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		p, events, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, actionResponse{Pet: toPetResponse(p), Events: emptyIfNil(events)})
	}
}

func actionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		owner, err := svc.OwnerOf(r.Context(), petID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req actionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, events, err := svc.PerformAction(r.Context(), petID, ActionKind(strings.TrimSpace(req.Action)), req.Item)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, actionResponse{Pet: toPetResponse(p), Events: emptyIfNil(events)})
	}
}

func resetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		owner, err := svc.OwnerOf(r.Context(), petID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		p, err := svc.Reset(r.Context(), petID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// ToView expone la respuesta JSON de la mascota para que los handlers de
// otros módulos (games) no dupliquen el mapeo.
func ToView(p Pet) any {
	return toPetResponse(p)
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:     p.ID,
		UserID: p.UserID,
		Name:   p.Name,

		Stage:      string(p.Stage),
		Level:      p.Level,
		Experience: p.Experience,

		Hunger:      roundStat(p.Hunger),
		Happiness:   roundStat(p.Happiness),
		Cleanliness: roundStat(p.Cleanliness),
		Health:      roundStat(p.Health),
		Energy:      roundStat(p.Energy),
		Discipline:  roundStat(p.Discipline),

		IsSick:     p.IsSick,
		IsSleeping: p.IsSleeping,
		Expired:    p.Expired(),

		CareMistakes:     p.CareMistakes,
		Coins:            p.Coins,
		GamesWon:         p.GamesWon,
		GamesLost:        p.GamesLost,
		TrainingSessions: p.TrainingSessions,

		BirthTime:  p.BirthTime,
		LastUpdate: p.LastUpdate,
		SleepStart: p.SleepStart,
	}
}

func roundStat(v float64) int {
	return int(math.Round(v))
}

func emptyIfNil(events []string) []string {
	if events == nil {
		return []string{}
	}
	return events
}

// writeDomainError mapea los errores de dominio a status HTTP. Conflict
// llega acá solo con los reintentos agotados.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrPetAsleep), errors.Is(err, ErrNotExpired):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrCooldownActive):
		// Retry-After grueso; el cooldown exacto depende de la acción.
		w.Header().Set("Retry-After", "60")
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, ErrInsufficientResource):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrCorruptState):
		http.Error(w, "internal error", http.StatusInternalServerError)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (pets/games/items); extraer un helper común puede esperar a que haga
// falta de verdad.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
