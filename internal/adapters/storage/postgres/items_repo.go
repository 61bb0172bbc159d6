package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pixel-pet/internal/domain/items"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) List(ctx context.Context) ([]items.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, price
		FROM items
		ORDER BY category, price
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]items.Item, 0)
	for rows.Next() {
		var it items.Item
		var category string
		if err := rows.Scan(&it.ID, &it.Name, &category, &it.Price); err != nil {
			return nil, err
		}
		it.Category = items.Category(category)
		out = append(out, it)
	}

	return out, rows.Err()
}

func (r *CatalogRepo) GetByName(ctx context.Context, name string) (items.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return items.Item{}, items.ErrItemUnknown
	}

	var it items.Item
	var category string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, price
		FROM items
		WHERE name = $1
	`, name).Scan(&it.ID, &it.Name, &category, &it.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return items.Item{}, items.ErrItemUnknown
		}
		return items.Item{}, err
	}
	it.Category = items.Category(category)
	return it, nil
}

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) ListByPet(ctx context.Context, petID string) ([]items.InventoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pi.pet_id, i.name, pi.quantity
		FROM pet_items pi
		JOIN items i ON i.id = pi.item_id
		WHERE pi.pet_id = $1 AND pi.quantity > 0
		ORDER BY i.name
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]items.InventoryEntry, 0)
	for rows.Next() {
		var e items.InventoryEntry
		if err := rows.Scan(&e.PetID, &e.ItemName, &e.Quantity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

// Adjust aplica el delta con piso en 0 en un solo statement por signo:
// el WHERE descarta el decremento que no alcanza, sin efecto parcial.
func (r *InventoryRepo) Adjust(ctx context.Context, petID, itemName string, delta int) error {
	if delta >= 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO pet_items (pet_id, item_id, quantity)
			SELECT $1, i.id, $3
			FROM items i
			WHERE i.name = $2
			ON CONFLICT (pet_id, item_id)
			DO UPDATE SET quantity = pet_items.quantity + EXCLUDED.quantity
		`, petID, itemName, delta)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return items.ErrItemUnknown
		}
		return nil
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_items
		SET quantity = pet_items.quantity + $3
		FROM items i
		WHERE pet_items.item_id = i.id
		  AND pet_items.pet_id = $1
		  AND i.name = $2
		  AND pet_items.quantity + $3 >= 0
	`, petID, itemName, delta)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return items.ErrInsufficientQuantity
	}
	return nil
}
