package replenishment

import (
	"context"

	"github.com/estebancaso/abasto-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el cambio de estado y el abono de stock de una
// aprobación se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		replRepo repository.ReplenishmentRepository,
	) error) error
}

// ReorderNotifier notifica a un canal externo la creación de una solicitud.
// Best-effort: el caller descarta el error tras loguearlo y nunca lo propaga.
type ReorderNotifier interface {
	NotifyReorder(ctx context.Context, providerPhone, productName string, quantity int64) error
}

// NopNotifier implementación nula (webhook sin configurar, tests).
type NopNotifier struct{}

// NotifyReorder no hace nada.
func (NopNotifier) NotifyReorder(context.Context, string, string, int64) error { return nil }
