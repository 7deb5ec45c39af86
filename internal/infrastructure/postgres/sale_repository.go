package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estebancaso/abasto-api/internal/domain/entity"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Las ventas son inmutables: solo INSERT y SELECT.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, profile_id, product_id, quantity, unit_price, total_value, date, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProfileID, sale.ProductID, sale.Quantity,
		sale.UnitPrice, sale.TotalValue, sale.Date, sale.RecordedBy, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByProfile lista ventas del perfil en el rango [from, to], más recientes primero.
func (r *SaleRepo) ListByProfile(profileID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, profile_id, product_id, quantity, unit_price, total_value, date, recorded_by, created_at
		FROM sales
		WHERE profile_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, profileID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.ProductID, &s.Quantity,
			&s.UnitPrice, &s.TotalValue, &s.Date, &s.RecordedBy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Summarize agrega unidades y valor total vendidos en el rango de fechas.
func (r *SaleRepo) Summarize(profileID string, from, to time.Time) (int64, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(total_value), 0)
		FROM sales
		WHERE profile_id = $1 AND date >= $2 AND date <= $3`
	var units int64
	var value decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, profileID, from, to).Scan(&units, &value)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("summarize sales: %w", err)
	}
	return units, value, nil
}
