package repository

import "github.com/estebancaso/abasto-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// AdjustStock es la única vía de mutación de CurrentStock: un UPDATE atómico
// current_stock = current_stock + delta en el servidor, para evitar lost updates
// entre aprobaciones y ventas concurrentes.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByProfileAndSKU(profileID, sku string) (*entity.Product, error)
	ListByProfile(profileID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// AdjustStock suma delta (puede ser negativo) y devuelve el stock resultante.
	// Falla con domain.ErrInsufficientStock si el resultado sería negativo.
	AdjustStock(productID string, delta int64) (int64, error)
	Delete(id string) error
}
