package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAlertDTO alerta activa derivada del inventario.
type StockAlertDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Type        string `json:"type"` // low_stock | out_of_stock
	Current     int64  `json:"current_stock"`
	Min         int64  `json:"min_stock"`
}

// InventoryReportRow una fila del reporte de inventario.
type InventoryReportRow struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Current     int64           `json:"current_stock"`
	Min         int64           `json:"min_stock"`
	Max         int64           `json:"max_stock"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	StockStatus string          `json:"stock_status"`
	Valuation   decimal.Decimal `json:"valuation"` // current_stock * unit_price
}

// InventorySummaryDTO resumen del inventario para el dashboard/reportes.
type InventorySummaryDTO struct {
	TotalProducts  int             `json:"total_products"`
	GoodCount      int             `json:"good_count"`
	LowCount       int             `json:"low_count"`
	OutCount       int             `json:"out_count"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
	Alerts         []StockAlertDTO `json:"alerts"`
	Rows           []InventoryReportRow `json:"rows,omitempty"`
}

// SalesSummaryDTO resumen de ventas en un rango de fechas.
type SalesSummaryDTO struct {
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	TotalUnits int64           `json:"total_units"`
	TotalValue decimal.Decimal `json:"total_value"`
}
