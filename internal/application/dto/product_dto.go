package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	SupplierID   string          `json:"supplier_id" validate:"required"`
	CurrentStock int64           `json:"current_stock" validate:"min=0"`
	MinStock     int64           `json:"min_stock" validate:"min=0"`
	MaxStock     int64           `json:"max_stock" validate:"min=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Unit         string          `json:"unit"`
}

// UpdateProductRequest entrada para actualizar un producto.
// CurrentStock no se actualiza por aquí: solo ventas y reabastecimientos lo mutan.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	SupplierID  *string          `json:"supplier_id"`
	MinStock    *int64           `json:"min_stock" validate:"omitempty,min=0"`
	MaxStock    *int64           `json:"max_stock" validate:"omitempty,min=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Unit        *string          `json:"unit"`
}

// ProductResponse salida de un producto, con su clasificación de stock y
// las cantidades sugeridas de reorden.
type ProductResponse struct {
	ID                  string          `json:"id"`
	ProfileID           string          `json:"profile_id"`
	SupplierID          string          `json:"supplier_id"`
	SKU                 string          `json:"sku,omitempty"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	Description         string          `json:"description,omitempty"`
	CurrentStock        int64           `json:"current_stock"`
	MinStock            int64           `json:"min_stock"`
	MaxStock            int64           `json:"max_stock"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Unit                string          `json:"unit"`
	StockStatus         string          `json:"stock_status"` // good | low | out
	SuggestedQuantities []int64         `json:"suggested_quantities,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
