package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/estebancaso/abasto-api/internal/domain"
	"github.com/estebancaso/abasto-api/internal/domain/entity"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, profile_id, supplier_id, sku, name, category, description,
		current_stock, min_stock, max_stock, unit_price, unit, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.ProfileID, product.SupplierID, product.SKU,
		product.Name, product.Category, product.Description,
		product.CurrentStock, product.MinStock, product.MaxStock,
		product.UnitPrice, product.Unit, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByProfileAndSKU obtiene un producto por perfil y SKU.
func (r *ProductRepo) GetByProfileAndSKU(profileID, sku string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE profile_id = $1 AND sku = $2`, profileID, sku)
}

// ListByProfile lista productos por perfil con paginación.
func (r *ProductRepo) ListByProfile(profileID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE profile_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, profileID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente. No toca current_stock: eso solo pasa
// por AdjustStock (ventas y reabastecimientos).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET supplier_id = $2, name = $3, category = $4, description = $5,
			min_stock = $6, max_stock = $7, unit_price = $8, unit = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SupplierID, product.Name, product.Category, product.Description,
		product.MinStock, product.MaxStock, product.UnitPrice, product.Unit, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// AdjustStock suma delta al stock con un UPDATE atómico en el servidor y devuelve
// el valor resultante. El CHECK current_stock >= 0 de la tabla convierte un
// descuento excesivo en ErrInsufficientStock; no hay lectura previa que perder
// ante mutaciones concurrentes.
func (r *ProductRepo) AdjustStock(productID string, delta int64) (int64, error) {
	query := `
		UPDATE products SET current_stock = current_stock + $2, updated_at = now()
		WHERE id = $1
		RETURNING current_stock`
	var newStock int64
	err := r.q.QueryRow(context.Background(), query, productID, delta).Scan(&newStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return newStock, nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// scanProduct escanea una fila de products en el orden de productColumns.
func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.ProfileID, &p.SupplierID, &p.SKU,
		&p.Name, &p.Category, &p.Description,
		&p.CurrentStock, &p.MinStock, &p.MaxStock,
		&p.UnitPrice, &p.Unit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
