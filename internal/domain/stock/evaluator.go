// Package stock contiene la lógica pura de evaluación de inventario (servicio de dominio):
// clasificación de stock, sugerencia de cantidades de reorden y derivación de alertas.
package stock

import "github.com/estebancaso/abasto-api/internal/domain/entity"

// Status clasificación del stock de un producto.
type Status string

const (
	StatusGood Status = "good"
	StatusLow  Status = "low"
	StatusOut  Status = "out"
)

// Tipos de alerta derivados del estado de stock.
const (
	AlertLowStock   = "low_stock"
	AlertOutOfStock = "out_of_stock"
)

// Alert alerta derivada de un producto bajo o fuera de stock. No se persiste:
// se recalcula desde los productos cada vez que se consulta.
type Alert struct {
	ProductID   string
	ProductName string
	Type        string // low_stock | out_of_stock
	Current     int64
	Min         int64
}

// Classify clasifica el stock actual contra el mínimo:
// out cuando current <= 0; low cuando 0 < current <= min; good en otro caso.
// Función pura, estable ante llamadas repetidas con la misma entrada.
func Classify(current, min int64) Status {
	switch {
	case current <= 0:
		return StatusOut
	case current <= min:
		return StatusLow
	default:
		return StatusGood
	}
}

// ClassifyProduct clasifica un producto por sus campos de stock.
func ClassifyProduct(p *entity.Product) Status {
	return Classify(p.CurrentStock, p.MinStock)
}

// SuggestQuantities devuelve las cantidades candidatas de reorden:
// [2*min, 3*min, max-current, max], filtradas a valores estrictamente positivos,
// sin duplicados y conservando el orden de generación. Si todas son no positivas
// la lista queda vacía y el caller debe pedir entrada manual (mínimo 1).
func SuggestQuantities(current, min, max int64) []int64 {
	candidates := []int64{min * 2, min * 3, max - current, max}
	out := make([]int64, 0, len(candidates))
	seen := make(map[int64]bool, len(candidates))
	for _, q := range candidates {
		if q <= 0 || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}

// SuggestForProduct sugiere cantidades de reorden para un producto.
func SuggestForProduct(p *entity.Product) []int64 {
	return SuggestQuantities(p.CurrentStock, p.MinStock, p.MaxStock)
}

// ActiveAlerts deriva las alertas activas de una lista de productos.
// Los productos en estado good no generan alerta.
func ActiveAlerts(products []*entity.Product) []Alert {
	var alerts []Alert
	for _, p := range products {
		switch Classify(p.CurrentStock, p.MinStock) {
		case StatusOut:
			alerts = append(alerts, Alert{
				ProductID: p.ID, ProductName: p.Name,
				Type: AlertOutOfStock, Current: p.CurrentStock, Min: p.MinStock,
			})
		case StatusLow:
			alerts = append(alerts, Alert{
				ProductID: p.ID, ProductName: p.Name,
				Type: AlertLowStock, Current: p.CurrentStock, Min: p.MinStock,
			})
		}
	}
	return alerts
}
