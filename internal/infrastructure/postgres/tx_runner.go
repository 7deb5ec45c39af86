package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estebancaso/abasto-api/internal/application/replenishment"
	"github.com/estebancaso/abasto-api/internal/application/usecase"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
)

var (
	_ replenishment.TxRunner = (*TxRunner)(nil)
	_ usecase.SalesTxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta casos de uso dentro de una transacción, entregando
// repositorios atados a la tx. Commit si fn devuelve nil, rollback si no.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner sobre el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con repositorios de producto y reabastecimiento en la misma tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	replRepo repository.ReplenishmentRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewReplenishmentRepository(q))
	})
}

// RunSales ejecuta fn con repositorios de producto y ventas en la misma tx.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewProductRepository(q), NewSaleRepository(q))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
