package items

import (
	"encoding/json"
	"net/http"
	"strings"

	"pixel-pet/internal/domain/pets"
	"pixel-pet/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Get("/items", listCatalogHandler(svc))
	r.Get("/pets/{petID}/inventory", inventoryHandler(svc, petsSvc))
}

type itemResponse struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int    `json:"price"`
}

type inventoryResponse struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

func listCatalogHandler(svc *Service) http.HandlerFunc {
	// Catálogo público: data de referencia, sin auth.
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, err := svc.ListCatalog(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]itemResponse, 0, len(catalog))
		for _, it := range catalog {
			out = append(out, itemResponse{Name: it.Name, Category: string(it.Category), Price: it.Price})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func inventoryHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		owner, err := petsSvc.OwnerOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if owner != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		entries, err := svc.InventoryOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]inventoryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, inventoryResponse{ItemName: e.ItemName, Quantity: e.Quantity})
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
