package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pixel-pet/internal/domain/items"
)

type catalogRepo struct {
	mu     sync.RWMutex
	byName map[string]items.Item
}

// NewCatalogRepo arranca sembrado con el catálogo por defecto.
func NewCatalogRepo() items.CatalogRepository {
	r := &catalogRepo{byName: make(map[string]items.Item)}
	for _, it := range items.DefaultCatalog() {
		r.byName[it.Name] = it
	}
	return r
}

func (r *catalogRepo) List(ctx context.Context) ([]items.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]items.Item, 0, len(r.byName))
	for _, it := range r.byName {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Price < out[j].Price
	})
	return out, nil
}

func (r *catalogRepo) GetByName(ctx context.Context, name string) (items.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return items.Item{}, items.ErrItemUnknown
	}
	return it, nil
}

type inventoryKey struct {
	petID    string
	itemName string
}

type inventoryRepo struct {
	mu  sync.Mutex
	qty map[inventoryKey]int
}

func NewInventoryRepo() items.InventoryRepository {
	return &inventoryRepo{qty: make(map[inventoryKey]int)}
}

func (r *inventoryRepo) ListByPet(ctx context.Context, petID string) ([]items.InventoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]items.InventoryEntry, 0)
	for k, q := range r.qty {
		if k.petID != petID || q == 0 {
			continue
		}
		out = append(out, items.InventoryEntry{PetID: petID, ItemName: k.itemName, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}

func (r *inventoryRepo) Adjust(ctx context.Context, petID, itemName string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := inventoryKey{petID: petID, itemName: itemName}
	next := r.qty[k] + delta
	if next < 0 {
		// Piso en 0: el decremento que no alcanza no aplica nada.
		return items.ErrInsufficientQuantity
	}
	r.qty[k] = next
	return nil
}
