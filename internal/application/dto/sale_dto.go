package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea del cierre del día: producto y unidades vendidas.
type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// DayClosingRequest entrada para registrar las ventas del día en lote.
type DayClosingRequest struct {
	Date  *time.Time        `json:"date"` // por defecto, ahora
	Items []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// SaleResponse salida de una venta registrada.
type SaleResponse struct {
	ID         string          `json:"id"`
	ProfileID  string          `json:"profile_id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalValue decimal.Decimal `json:"total_value"`
	Date       time.Time       `json:"date"`
	RecordedBy string          `json:"recorded_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// DayClosingResponse resumen del cierre: ventas registradas y totales.
type DayClosingResponse struct {
	Sales      []SaleResponse  `json:"sales"`
	TotalUnits int64           `json:"total_units"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
