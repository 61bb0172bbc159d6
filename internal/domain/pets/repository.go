package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)

	// GetActiveByUser devuelve la mascota viva del usuario (a lo sumo una).
	GetActiveByUser(ctx context.Context, userID string) (Pet, error)

	// Update compara p.Version contra lo almacenado y guarda con la
	// versión incrementada; devuelve ErrConflict si otro write ganó.
	Update(ctx context.Context, p Pet) error
}

// ItemStore es lo único que este módulo necesita del subsistema de ítems:
// decrementos de cantidad ya validados y el kit inicial. Nada de precios.
type ItemStore interface {
	// Consume descuenta qty del ítem; ErrInsufficientResource si no alcanza.
	Consume(ctx context.Context, petID, itemName string, qty int) error

	// Refund devuelve un consumo cuando la secuencia posterior no commitea.
	Refund(ctx context.Context, petID, itemName string, qty int) error

	// GrantStarterKit carga el inventario inicial de una cría nueva.
	GrantStarterKit(ctx context.Context, petID string) error

	// Has informa si hay stock del ítem, sin consumirlo.
	Has(ctx context.Context, petID, itemName string) (bool, error)
}
