package items

import (
	"context"
	"errors"
	"strings"

	"pixel-pet/internal/domain/pets"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrItemUnknown  = errors.New("item not in catalog")

	// ErrInsufficientQuantity se traduce al error de dominio de pets en
	// Consume, para que el procesador de acciones lo reconozca.
	ErrInsufficientQuantity = errors.New("insufficient item quantity")
)

// Service cubre el contrato que el core de mascotas necesita del
// subsistema de ítems: decrementos validados y el kit inicial. La compra
// con monedas es del flujo de shop, que queda afuera.
type Service struct {
	catalog CatalogRepository
	inv     InventoryRepository
}

func NewService(catalog CatalogRepository, inv InventoryRepository) *Service {
	return &Service{catalog: catalog, inv: inv}
}

func (s *Service) ListCatalog(ctx context.Context) ([]Item, error) {
	return s.catalog.List(ctx)
}

func (s *Service) InventoryOf(ctx context.Context, petID string) ([]InventoryEntry, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.inv.ListByPet(ctx, petID)
}

// Consume implementa pets.ItemStore: decremento validado, sin efecto
// parcial si no hay stock.
func (s *Service) Consume(ctx context.Context, petID, itemName string, qty int) error {
	if qty <= 0 {
		return ErrInvalidInput
	}
	if _, err := s.catalog.GetByName(ctx, itemName); err != nil {
		return ErrItemUnknown
	}
	if err := s.inv.Adjust(ctx, petID, itemName, -qty); err != nil {
		if errors.Is(err, ErrInsufficientQuantity) {
			return pets.ErrInsufficientResource
		}
		return err
	}
	return nil
}

// Refund devuelve un consumo cuya acción posterior no commiteó.
func (s *Service) Refund(ctx context.Context, petID, itemName string, qty int) error {
	if qty <= 0 {
		return ErrInvalidInput
	}
	return s.inv.Adjust(ctx, petID, itemName, qty)
}

// Has informa stock sin consumir.
func (s *Service) Has(ctx context.Context, petID, itemName string) (bool, error) {
	entries, err := s.inv.ListByPet(ctx, petID)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.ItemName == itemName && e.Quantity > 0 {
			return true, nil
		}
	}
	return false, nil
}

// GrantStarterKit carga el inventario inicial de una cría nueva.
func (s *Service) GrantStarterKit(ctx context.Context, petID string) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return ErrInvalidInput
	}
	for name, qty := range StarterKit() {
		if err := s.inv.Adjust(ctx, petID, name, qty); err != nil {
			return err
		}
	}
	return nil
}
