package repository

import (
	"time"

	"github.com/estebancaso/abasto-api/internal/domain/entity"
)

// ReplenishmentUpdate actualización parcial de una solicitud: solo los campos
// no nulos se escriben (la tabla conserva el resto).
type ReplenishmentUpdate struct {
	Status      *string
	Notes       *string
	ProductID   *string
	Quantity    *int64
	ApprovedAt  *time.Time
	CompletedAt *time.Time
}

// ReplenishmentRepository define el puerto de persistencia para ReplenishmentRequest.
// Create y los listados devuelven el registro enriquecido con snapshots de producto
// y proveedor tal como existen al momento de la consulta.
type ReplenishmentRepository interface {
	Create(req *entity.ReplenishmentRequest) (*entity.ReplenishmentRequest, error)
	GetByID(id string) (*entity.ReplenishmentRequest, error)
	// ListByProfile lista las solicitudes del perfil, más recientes primero.
	ListByProfile(profileID string, limit, offset int) ([]*entity.ReplenishmentRequest, error)
	// ListByRequester es el fallback cuando la consulta por perfil no está disponible.
	ListByRequester(userID string, limit, offset int) ([]*entity.ReplenishmentRequest, error)
	Update(id string, upd ReplenishmentUpdate) error
	Delete(id string) error
}
