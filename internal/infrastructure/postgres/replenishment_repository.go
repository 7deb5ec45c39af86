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

var _ repository.ReplenishmentRepository = (*ReplenishmentRepo)(nil)

// ReplenishmentRepo implementación del puerto ReplenishmentRepository sobre PostgreSQL.
// Todas las lecturas devuelven la solicitud con snapshots de producto y proveedor
// unidos al momento de la consulta (JOIN, no referencia viva).
type ReplenishmentRepo struct {
	q Querier
}

// NewReplenishmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReplenishmentRepository(q Querier) *ReplenishmentRepo {
	return &ReplenishmentRepo{q: q}
}

// selectJoined columnas de la solicitud más los snapshots de producto y proveedor.
const selectJoined = `
	SELECT r.id, r.profile_id, r.product_id, r.supplier_id, r.quantity, r.status,
	       r.notes, r.requested_by, r.requested_at, r.approved_at, r.completed_at, r.updated_at,
	       p.id, p.profile_id, p.supplier_id, p.sku, p.name, p.category, p.description,
	       p.current_stock, p.min_stock, p.max_stock, p.unit_price, p.unit, p.created_at, p.updated_at,
	       s.id, s.profile_id, s.name, s.contact, s.phone, s.email, s.address, s.created_at, s.updated_at
	FROM replenishment_requests r
	JOIN products p ON p.id = r.product_id
	JOIN suppliers s ON s.id = r.supplier_id`

// Create inserta la solicitud y la devuelve enriquecida con los snapshots
// actuales de producto y proveedor.
func (r *ReplenishmentRepo) Create(req *entity.ReplenishmentRequest) (*entity.ReplenishmentRequest, error) {
	query := `
		INSERT INTO replenishment_requests
			(id, profile_id, product_id, supplier_id, quantity, status, notes, requested_by, requested_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.ProfileID, req.ProductID, req.SupplierID, req.Quantity,
		req.Status, req.Notes, req.RequestedBy, req.RequestedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert replenishment request: %w", err)
	}
	created, err := r.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, domain.ErrNotFound
	}
	return created, nil
}

// GetByID obtiene una solicitud por ID con snapshots.
func (r *ReplenishmentRepo) GetByID(id string) (*entity.ReplenishmentRequest, error) {
	row := r.q.QueryRow(context.Background(), selectJoined+` WHERE r.id = $1`, id)
	req, err := scanReplenishment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replenishment request: %w", err)
	}
	return req, nil
}

// ListByProfile lista solicitudes del perfil, más recientes primero.
func (r *ReplenishmentRepo) ListByProfile(profileID string, limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	return r.list(selectJoined+` WHERE r.profile_id = $1 ORDER BY r.requested_at DESC LIMIT $2 OFFSET $3`,
		profileID, limit, offset)
}

// ListByRequester lista solicitudes creadas por el usuario, más recientes primero.
// Fallback cuando la consulta por perfil no está disponible.
func (r *ReplenishmentRepo) ListByRequester(userID string, limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	return r.list(selectJoined+` WHERE r.requested_by = $1 ORDER BY r.requested_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}

func (r *ReplenishmentRepo) list(query string, args ...any) ([]*entity.ReplenishmentRequest, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list replenishment requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReplenishmentRequest
	for rows.Next() {
		req, err := scanReplenishment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan replenishment request: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

// Update aplica una actualización parcial: solo los campos no nulos se escriben.
func (r *ReplenishmentRepo) Update(id string, upd repository.ReplenishmentUpdate) error {
	query := `
		UPDATE replenishment_requests SET
			status       = COALESCE($2, status),
			notes        = COALESCE($3, notes),
			product_id   = COALESCE($4, product_id),
			quantity     = COALESCE($5, quantity),
			approved_at  = COALESCE($6, approved_at),
			completed_at = COALESCE($7, completed_at),
			updated_at   = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		id, upd.Status, upd.Notes, upd.ProductID, upd.Quantity, upd.ApprovedAt, upd.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update replenishment request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una solicitud por ID.
func (r *ReplenishmentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM replenishment_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete replenishment request: %w", err)
	}
	return nil
}

// scanReplenishment escanea una fila de selectJoined.
func scanReplenishment(row pgx.Row) (*entity.ReplenishmentRequest, error) {
	var req entity.ReplenishmentRequest
	var p entity.Product
	var s entity.Supplier
	err := row.Scan(
		&req.ID, &req.ProfileID, &req.ProductID, &req.SupplierID, &req.Quantity, &req.Status,
		&req.Notes, &req.RequestedBy, &req.RequestedAt, &req.ApprovedAt, &req.CompletedAt, &req.UpdatedAt,
		&p.ID, &p.ProfileID, &p.SupplierID, &p.SKU, &p.Name, &p.Category, &p.Description,
		&p.CurrentStock, &p.MinStock, &p.MaxStock, &p.UnitPrice, &p.Unit, &p.CreatedAt, &p.UpdatedAt,
		&s.ID, &s.ProfileID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	req.Product = &p
	req.Supplier = &s
	return &req, nil
}
