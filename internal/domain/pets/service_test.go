package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test doubles (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet

	// conflictsLeft fuerza ErrConflict en los próximos N updates, para
	// ejercitar el reintento de la secuencia load→reconcile→act→save.
	conflictsLeft int
}

func newServiceTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return ErrConflict
	}
	stored, ok := r.byID[p.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Version != p.Version {
		return ErrConflict
	}
	p.Version++
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetActiveByUser(ctx context.Context, userID string) (Pet, error) {
	for _, p := range r.byID {
		if p.UserID == userID && p.Alive() {
			return p, nil
		}
	}
	return Pet{}, ErrNotFound
}

type testItems struct {
	stock map[string]int // petID+"/"+item => cantidad
	kits  []string       // petIDs que recibieron el kit inicial
}

func newTestItems() *testItems {
	return &testItems{stock: map[string]int{}}
}

func (s *testItems) key(petID, item string) string { return petID + "/" + item }

func (s *testItems) Consume(ctx context.Context, petID, itemName string, qty int) error {
	k := s.key(petID, itemName)
	if s.stock[k] < qty {
		return ErrInsufficientResource
	}
	s.stock[k] -= qty
	return nil
}

func (s *testItems) Refund(ctx context.Context, petID, itemName string, qty int) error {
	s.stock[s.key(petID, itemName)] += qty
	return nil
}

func (s *testItems) GrantStarterKit(ctx context.Context, petID string) error {
	s.kits = append(s.kits, petID)
	s.stock[s.key(petID, "medicine")] += 1
	s.stock[s.key(petID, "toy")] += 1
	return nil
}

func (s *testItems) Has(ctx context.Context, petID, itemName string) (bool, error) {
	return s.stock[s.key(petID, itemName)] > 0, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_OneLivePetPerUser(t *testing.T) {
	repo := newServiceTestRepo()
	items := newTestItems()
	svc := NewService(repo, items)

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)

	p, err := svc.Create(context.Background(), "user-1", "Milo")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Stage != StageEgg || p.Level != 1 || p.Coins != StarterCoins {
		t.Fatalf("unexpected newborn: %+v", p)
	}
	if len(items.kits) != 1 || items.kits[0] != p.ID {
		t.Fatalf("expected starter kit for %s, got %v", p.ID, items.kits)
	}

	if _, err := svc.Create(context.Background(), "user-1", "Otro"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "  ", "Milo"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty user, got %v", err)
	}
}

func TestService_Create_DefaultName(t *testing.T) {
	svc := NewService(newServiceTestRepo(), newTestItems())

	p, err := svc.Create(context.Background(), "user-1", "  ")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Name != "Tamagotchi" {
		t.Fatalf("expected default name, got %q", p.Name)
	}
}

func TestService_GetByUser_PersistsReconciliation(t *testing.T) {
	repo := newServiceTestRepo()
	svc := NewService(repo, newTestItems())

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	created, err := svc.Create(context.Background(), "user-1", "Milo")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Dos horas después, la lectura tiene que aplicar Y guardar el decay.
	svc.now = fixedClock(t0.Add(2 * time.Hour))
	p, events, err := svc.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByUser error: %v", err)
	}
	if p.Hunger != 64 {
		t.Fatalf("expected hunger 64 after 2h, got %v", p.Hunger)
	}
	if p.Stage != StageBaby || !hasEvent(events, EventHatched) {
		t.Fatalf("expected hatch during the read, got %s %v", p.Stage, events)
	}

	stored := repo.byID[created.ID]
	if !stored.LastUpdate.Equal(t0.Add(2 * time.Hour)) {
		t.Fatalf("expected reconciliation persisted, last_update=%v", stored.LastUpdate)
	}
	if stored.Version != 2 || p.Version != 2 {
		t.Fatalf("expected version bump, stored=%d returned=%d", stored.Version, p.Version)
	}
}

func TestService_Read_WithoutPendingDecay_SkipsSave(t *testing.T) {
	repo := newServiceTestRepo()
	svc := NewService(repo, newTestItems())

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	p, err := svc.Create(context.Background(), "user-1", "Milo")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Mismo instante: nada que reconciliar, nada que escribir.
	if _, _, err := svc.GetByID(context.Background(), p.ID); err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if repo.byID[p.ID].Version != 1 {
		t.Fatalf("redundant read must not bump version, got %d", repo.byID[p.ID].Version)
	}
}

func TestService_PerformAction_FeedFallsBackToBasic(t *testing.T) {
	repo := newServiceTestRepo()
	items := newTestItems()
	svc := NewService(repo, items)

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	created, _ := svc.Create(context.Background(), "user-1", "Milo")

	seed := repo.byID[created.ID]
	seed.Stage = StageBaby
	seed.Hunger = 40
	repo.byID[created.ID] = seed

	// Sin stock premium: cae a la comida básica (+30), sin error.
	p, _, err := svc.PerformAction(context.Background(), created.ID, ActionFeed, PremiumFoodItem)
	if err != nil {
		t.Fatalf("feed error: %v", err)
	}
	if p.Hunger != 70 {
		t.Fatalf("expected basic feed (+30), got hunger %v", p.Hunger)
	}
}

func TestService_PerformAction_FeedPremiumConsumesStock(t *testing.T) {
	repo := newServiceTestRepo()
	items := newTestItems()
	svc := NewService(repo, items)

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	created, _ := svc.Create(context.Background(), "user-1", "Milo")

	seed := repo.byID[created.ID]
	seed.Stage = StageBaby
	seed.Hunger = 40
	repo.byID[created.ID] = seed
	items.stock[items.key(created.ID, PremiumFoodItem)] = 1

	p, _, err := svc.PerformAction(context.Background(), created.ID, ActionFeed, PremiumFoodItem)
	if err != nil {
		t.Fatalf("premium feed error: %v", err)
	}
	if p.Hunger != 90 {
		t.Fatalf("expected premium feed (+50), got hunger %v", p.Hunger)
	}
	if items.stock[items.key(created.ID, PremiumFoodItem)] != 0 {
		t.Fatalf("expected stock consumed")
	}
}

func TestService_PerformAction_MedicineRefundsOnFailure(t *testing.T) {
	repo := newServiceTestRepo()
	items := newTestItems()
	svc := NewService(repo, items)

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	created, _ := svc.Create(context.Background(), "user-1", "Milo")

	// Mascota muerta: el consumo pasa, la acción no; el ítem tiene que
	// volver al inventario.
	seed := repo.byID[created.ID]
	seed.Health = 0
	repo.byID[created.ID] = seed

	before := items.stock[items.key(created.ID, MedicineItem)]
	_, _, err := svc.PerformAction(context.Background(), created.ID, ActionMedicine, "")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if items.stock[items.key(created.ID, MedicineItem)] != before {
		t.Fatalf("expected refund, stock=%d want=%d", items.stock[items.key(created.ID, MedicineItem)], before)
	}
}

func TestService_PerformAction_MedicineWithoutStock(t *testing.T) {
	repo := newServiceTestRepo()
	items := newTestItems()
	svc := NewService(repo, items)

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	created, _ := svc.Create(context.Background(), "user-1", "Milo")
	items.stock[items.key(created.ID, MedicineItem)] = 0

	if _, _, err := svc.PerformAction(context.Background(), created.ID, ActionMedicine, ""); !errors.Is(err, ErrInsufficientResource) {
		t.Fatalf("expected ErrInsufficientResource, got %v", err)
	}
}

func TestService_Mutate_RetriesOnConflict(t *testing.T) {
	repo := newServiceTestRepo()
	svc := NewService(repo, newTestItems())

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	created, _ := svc.Create(context.Background(), "user-1", "Milo")

	seed := repo.byID[created.ID]
	seed.Stage = StageBaby
	repo.byID[created.ID] = seed

	// Dos conflictos y después commitea: dentro del presupuesto de retries.
	repo.conflictsLeft = 2
	if _, _, err := svc.PerformAction(context.Background(), created.ID, ActionFeed, ""); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}

	// Conflictos sin fin: se rinde con ErrConflict.
	repo.conflictsLeft = saveRetries
	svc.now = fixedClock(t0.Add(time.Hour))
	if _, _, err := svc.PerformAction(context.Background(), created.ID, ActionPlay, ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict after exhausted retries, got %v", err)
	}
}

func TestService_Mutate_RejectsCorruptRecord(t *testing.T) {
	repo := newServiceTestRepo()
	svc := NewService(repo, newTestItems())

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	created, _ := svc.Create(context.Background(), "user-1", "Milo")

	seed := repo.byID[created.ID]
	seed.Hunger = 150 // fuera de [0,100]: corrupción, no se clampa
	repo.byID[created.ID] = seed

	if _, _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrCorruptState) {
		t.Fatalf("expected ErrCorruptState, got %v", err)
	}
}

func TestService_Reset_OnlyWhenExpired(t *testing.T) {
	repo := newServiceTestRepo()
	items := newTestItems()
	svc := NewService(repo, items)

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	created, _ := svc.Create(context.Background(), "user-1", "Milo")

	if _, err := svc.Reset(context.Background(), created.ID); !errors.Is(err, ErrNotExpired) {
		t.Fatalf("expected ErrNotExpired on live pet, got %v", err)
	}

	seed := repo.byID[created.ID]
	seed.CareMistakes = FatalCareMistakes
	repo.byID[created.ID] = seed

	fresh, err := svc.Reset(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if fresh.ID == created.ID {
		t.Fatalf("reset must mint a new record")
	}
	if fresh.Name != "Milo" || fresh.Stage != StageEgg || fresh.Coins != StarterCoins {
		t.Fatalf("unexpected respawn: %+v", fresh)
	}
	// El registro viejo queda como historial
	if _, ok := repo.byID[created.ID]; !ok {
		t.Fatalf("old record must be kept")
	}
	if items.kits[len(items.kits)-1] != fresh.ID {
		t.Fatalf("expected starter kit for the respawn")
	}
}

func TestService_ApplyGameReward_Validation(t *testing.T) {
	repo := newServiceTestRepo()
	svc := NewService(repo, newTestItems())

	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	created, _ := svc.Create(context.Background(), "user-1", "Milo")

	negative := func(Pet) GameReward { return GameReward{Experience: -1} }
	if _, _, err := svc.ApplyGameReward(context.Background(), created.ID, negative); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative reward, got %v", err)
	}

	seed := repo.byID[created.ID]
	seed.Health = 0
	repo.byID[created.ID] = seed
	reward := func(Pet) GameReward { return GameReward{Experience: 10, Coins: 5} }
	if _, _, err := svc.ApplyGameReward(context.Background(), created.ID, reward); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState for expired pet, got %v", err)
	}
}
