package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario del perfil.
// CurrentStock se muta solo vía ventas (decremento) y reabastecimientos completados
// (incremento); ambos con UPDATE atómico en la DB, nunca read-modify-write.
// CurrentStock, MinStock y MaxStock son no negativos; no se exige MinStock <= MaxStock.
type Product struct {
	ID           string
	ProfileID    string
	SupplierID   string
	SKU          string
	Name         string
	Category     string
	Description  string
	CurrentStock int64
	MinStock     int64
	MaxStock     int64
	UnitPrice    decimal.Decimal // precio de venta por unidad
	Unit         string          // "pieces", "kg", "liters", etc.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
