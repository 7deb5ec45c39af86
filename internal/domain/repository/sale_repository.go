package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/estebancaso/abasto-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (inmutable tras crear).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	ListByProfile(profileID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error)
	// Summarize devuelve unidades vendidas y valor total en el rango de fechas.
	Summarize(profileID string, from, to time.Time) (units int64, value decimal.Decimal, err error)
}
