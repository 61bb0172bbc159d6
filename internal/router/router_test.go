package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pixel-pet/internal/router"
)

type petView struct {
	ID         string `json:"id"`
	Stage      string `json:"stage"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
	Hunger     int    `json:"hunger"`
	Coins      int    `json:"coins"`
	IsSleeping bool   `json:"is_sleeping"`
	Expired    bool   `json:"expired"`
}

type stateView struct {
	Pet    petView  `json:"pet"`
	Events []string `json:"events"`
}

func TestHTTP_EndToEnd_CareFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	userID := "user-1"

	// 1) Alta: huevo con los defaults
	petID := createPet(t, ts.URL, userID, "Milo")

	// 2) /me/pet devuelve la mascota reconciliada
	{
		st, body := doReq(t, ts.URL, "GET", "/me/pet", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get my pet, got %d body=%s", st, string(body))
		}
		var resp stateView
		_ = json.Unmarshal(body, &resp)
		if resp.Pet.ID != petID || resp.Pet.Stage != "egg" {
			t.Fatalf("unexpected pet: %+v", resp.Pet)
		}
		if resp.Pet.Hunger != 80 || resp.Pet.Coins != 50 {
			t.Fatalf("unexpected newborn stats: %+v", resp.Pet)
		}
	}

	// 3) Alimentar aplica y ancla el cooldown
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/actions", userID, map[string]any{"action": "feed"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 feed, got %d body=%s", st, string(body))
		}
	}

	// 4) Repetir dentro del cooldown => 429 con Retry-After
	{
		req := newReq(t, ts.URL, "POST", "/pets/"+petID+"/actions", userID, map[string]any{"action": "feed"})
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("expected 429 within cooldown, got %d", res.StatusCode)
		}
		if res.Header.Get("Retry-After") == "" {
			t.Fatalf("expected Retry-After header on cooldown")
		}
	}

	// 5) Dormir
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/actions", userID, map[string]any{"action": "sleep"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 sleep, got %d body=%s", st, string(body))
		}
		var resp stateView
		_ = json.Unmarshal(body, &resp)
		if !resp.Pet.IsSleeping || !contains(resp.Events, "fell_asleep") {
			t.Fatalf("expected sleeping pet, got %+v events=%v", resp.Pet, resp.Events)
		}
	}

	// 6) Dormida no se la puede limpiar
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/actions", userID, map[string]any{"action": "clean"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 cleaning asleep pet, got %d", st)
		}
	}

	// 7) Despertar
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/actions", userID, map[string]any{"action": "wake"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 wake, got %d body=%s", st, string(body))
		}
	}

	// 8) Resultado de minijuego: acredita exp y monedas (huevo: 20/15)
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/games", userID, map[string]any{
			"game_type": "guess",
			"outcome":   "win",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 submit game, got %d body=%s", st, string(body))
		}
		var resp stateView
		_ = json.Unmarshal(body, &resp)
		if resp.Pet.Experience != 20 || resp.Pet.Coins != 65 {
			t.Fatalf("unexpected reward: %+v", resp.Pet)
		}
	}

	// 9) Kit inicial en el inventario
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/inventory", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 inventory, got %d body=%s", st, string(body))
		}
		var entries []struct {
			ItemName string `json:"item_name"`
			Quantity int    `json:"quantity"`
		}
		_ = json.Unmarshal(body, &entries)
		if len(entries) != 2 {
			t.Fatalf("expected starter kit (2 items), got %v", entries)
		}
	}
}

func TestHTTP_OwnershipAndLifecycleGuards(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	intruderID := "intruder-1"

	petID := createPet(t, ts.URL, ownerID, "Milo")

	// Otro usuario no ve ni toca la mascota
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, intruderID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get by intruder, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/actions", intruderID, map[string]any{"action": "feed"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 action by intruder, got %d", st)
		}
	}

	// Reset solo sobre mascota expirada
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/reset", ownerID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 reset on live pet, got %d", st)
		}
	}

	// Una sola mascota viva por usuario
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets", ownerID, map[string]any{"name": "Otro"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 second pet, got %d", st)
		}
	}

	// Sin identidad no hay mascota
	{
		st, _ := doReq(t, ts.URL, "GET", "/me/pet", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
	}

	// El catálogo es público
	{
		st, body := doReq(t, ts.URL, "GET", "/items", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 catalog, got %d", st)
		}
		var items []struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 4 {
			t.Fatalf("expected 4 catalog items, got %v", items)
		}
	}
}

func createPet(t *testing.T, baseURL, userID, name string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, map[string]any{"name": name})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func contains(events []string, want string) bool {
	for _, e := range events {
		if e == want {
			return true
		}
	}
	return false
}

func newReq(t *testing.T, baseURL, method, path, debugUserID string, body any) *http.Request {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}
	return req
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	res, err := http.DefaultClient.Do(newReq(t, baseURL, method, path, debugUserID, body))
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
