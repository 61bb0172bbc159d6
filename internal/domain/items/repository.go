package items

import "context"

type CatalogRepository interface {
	List(ctx context.Context) ([]Item, error)
	GetByName(ctx context.Context, name string) (Item, error)
}

type InventoryRepository interface {
	ListByPet(ctx context.Context, petID string) ([]InventoryEntry, error)

	// Adjust suma delta (puede ser negativo) con piso en 0: si el stock no
	// alcanza para el decremento, no aplica nada y devuelve
	// ErrInsufficientQuantity.
	Adjust(ctx context.Context, petID, itemName string, delta int) error
}
