package games

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pixel-pet/internal/domain/pets"
	"pixel-pet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/games", func(gr chi.Router) {
		gr.Post("/", submitResultHandler(svc, petsSvc))
		gr.Get("/", historyHandler(svc, petsSvc))
	})
}

type submitResultRequest struct {
	GameType string `json:"game_type"`
	Outcome  string `json:"outcome"`
}

type sessionResponse struct {
	ID               string    `json:"id"`
	PetID            string    `json:"pet_id"`
	GameType         string    `json:"game_type"`
	Outcome          string    `json:"outcome"`
	ExperienceGained int       `json:"experience_gained"`
	CoinsGained      int       `json:"coins_gained"`
	PlayedAt         time.Time `json:"played_at"`
}

type submitResultResponse struct {
	Pet    any      `json:"pet"`
	Events []string `json:"events"`
}

// ownedPetID resuelve el petID de la ruta y exige que el caller sea el
// dueño. Devuelve "" si ya respondió el error.
func ownedPetID(w http.ResponseWriter, r *http.Request, petsSvc *pets.Service) string {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return ""
	}

	petID := chi.URLParam(r, "petID")
	owner, err := petsSvc.OwnerOf(r.Context(), petID)
	if err != nil {
		http.Error(w, "pet not found", http.StatusNotFound)
		return ""
	}
	if owner != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return ""
	}
	return petID
}

func submitResultHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := ownedPetID(w, r, petsSvc)
		if petID == "" {
			return
		}

		var req submitResultRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		pet, events, err := svc.SubmitResult(r.Context(), petID, GameType(strings.TrimSpace(req.GameType)), Outcome(strings.TrimSpace(req.Outcome)))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, pets.ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, pets.ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			case errors.Is(err, pets.ErrInvalidState), errors.Is(err, pets.ErrConflict):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, submitResultResponse{Pet: pets.ToView(pet), Events: events})
	}
}

func historyHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := ownedPetID(w, r, petsSvc)
		if petID == "" {
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			limit, _ = strconv.Atoi(v)
		}

		sessions, err := svc.History(r.Context(), petID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]sessionResponse, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, sessionResponse{
				ID:               s.ID,
				PetID:            s.PetID,
				GameType:         string(s.GameType),
				Outcome:          string(s.Outcome),
				ExperienceGained: s.ExperienceGained,
				CoinsGained:      s.CoinsGained,
				PlayedAt:         s.PlayedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// Duplicado consciente con los otros módulos; ver nota en pets/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
