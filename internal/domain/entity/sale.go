package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada en el cierre del día.
// Inmutable una vez creada; TotalValue = Quantity * precio unitario al momento de la venta.
type Sale struct {
	ID         string
	ProfileID  string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal // precio unitario congelado al vender
	TotalValue decimal.Decimal
	Date       time.Time
	RecordedBy string
	CreatedAt  time.Time
}
