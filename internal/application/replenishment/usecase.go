// Package replenishment implementa el ciclo de vida de las solicitudes de
// reabastecimiento: creación, aprobación (con abono de stock), rechazo y
// finalización. Los estados rejected y completed son terminales.
package replenishment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estebancaso/abasto-api/internal/application/dto"
	"github.com/estebancaso/abasto-api/internal/application/usecase"
	"github.com/estebancaso/abasto-api/internal/domain"
	"github.com/estebancaso/abasto-api/internal/domain/entity"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
	"github.com/estebancaso/abasto-api/pkg/logger"
)

// UseCase controla las transiciones de estado de ReplenishmentRequest.
//
// Máquina de estados:
//
//	(ninguno) --create--> pending
//	pending  --approve--> completed   (abona quantity al stock; approved_at y completed_at)
//	pending  --reject---> rejected
//	approved --complete-> completed   (solo completed_at; alcanzable si un escritor
//	                                   externo dejó la solicitud en approved)
//
// Aprobar colapsa decisión y recepción en una sola operación: así se comporta
// el flujo de negocio actual, donde aprobar implica pedir y recibir de inmediato.
type UseCase struct {
	txRunner TxRunner
	replRepo repository.ReplenishmentRepository
	notifier ReorderNotifier
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. notifier puede ser NopNotifier.
func NewUseCase(txRunner TxRunner, replRepo repository.ReplenishmentRepository, notifier ReorderNotifier, log *logger.Logger) *UseCase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &UseCase{txRunner: txRunner, replRepo: replRepo, notifier: notifier, log: log}
}

// Create valida y persiste una solicitud en estado pending, devolviéndola
// enriquecida con snapshots de producto y proveedor. Requiere usuario y perfil
// autenticados; quantity > 0 se valida antes de tocar la DB.
// La notificación al webhook es fire-and-forget: nunca afecta el resultado.
func (uc *UseCase) Create(ctx context.Context, profileID, userID string, in dto.CreateReplenishmentRequest) (*dto.ReplenishmentResponse, error) {
	if userID == "" || profileID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.ProductID == "" || in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	req := &entity.ReplenishmentRequest{
		ID:          uuid.New().String(),
		ProfileID:   profileID,
		ProductID:   in.ProductID,
		SupplierID:  in.SupplierID,
		Quantity:    in.Quantity,
		Status:      entity.ReplenishmentPending,
		Notes:       in.Notes,
		RequestedBy: userID,
		RequestedAt: time.Now(),
	}
	created, err := uc.replRepo.Create(req)
	if err != nil {
		return nil, err
	}

	uc.dispatchNotification(created)

	return toResponse(created), nil
}

// dispatchNotification envía la notificación de reorden en background.
// Los fallos se loguean y se descartan; sin reintentos.
func (uc *UseCase) dispatchNotification(req *entity.ReplenishmentRequest) {
	phone, productName := "", ""
	if req.Supplier != nil {
		phone = req.Supplier.Phone
	}
	if req.Product != nil {
		productName = req.Product.Name
	}
	go func() {
		// Contexto propio: la petición HTTP que originó la solicitud ya respondió
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.notifier.NotifyReorder(ctx, phone, productName, req.Quantity); err != nil {
			uc.log.Warn().Err(err).
				Str("request_id", req.ID).
				Str("product_id", req.ProductID).
				Msg("notificación de reorden falló; se descarta")
		}
	}()
}

// CreateMulti crea una solicitud pending independiente por cada (producto, cantidad)
// para un mismo proveedor. Los inserts son secuenciales y se aborta en el primer
// fallo; las solicitudes ya insertadas persisten (sin rollback compensatorio).
// La respuesta reporta qué se creó y en qué producto se abortó.
func (uc *UseCase) CreateMulti(ctx context.Context, profileID, userID string, in dto.CreateMultiReplenishmentRequest) (*dto.MultiReplenishmentResponse, error) {
	if userID == "" || profileID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.SupplierID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	resp := &dto.MultiReplenishmentResponse{}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			resp.FailedProductID = item.ProductID
			resp.FailedReason = domain.ErrInvalidInput.Error()
			return resp, domain.ErrInvalidInput
		}
		req := &entity.ReplenishmentRequest{
			ID:          uuid.New().String(),
			ProfileID:   profileID,
			ProductID:   item.ProductID,
			SupplierID:  in.SupplierID,
			Quantity:    item.Quantity,
			Status:      entity.ReplenishmentPending,
			RequestedBy: userID,
			RequestedAt: time.Now(),
		}
		created, err := uc.replRepo.Create(req)
		if err != nil {
			resp.FailedProductID = item.ProductID
			resp.FailedReason = err.Error()
			return resp, err
		}
		resp.Created = append(resp.Created, *toResponse(created))
	}
	return resp, nil
}

// List lista las solicitudes del perfil, más recientes primero. Si la consulta
// por perfil falla, degrada a las solicitudes creadas por el usuario en lugar
// de fallar el listado completo.
func (uc *UseCase) List(ctx context.Context, profileID, userID string, limit, offset int) (*dto.ReplenishmentListResponse, error) {
	list, err := uc.replRepo.ListByProfile(profileID, limit, offset)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("profile_id", profileID).
			Msg("listado por perfil no disponible; degradando a solicitudes del usuario")
		list, err = uc.replRepo.ListByRequester(userID, limit, offset)
		if err != nil {
			return nil, err
		}
	}
	items := make([]dto.ReplenishmentResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toResponse(r))
	}
	return &dto.ReplenishmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Approve transiciona pending -> completed: abona quantity al stock del producto
// y fija approved_at y completed_at, todo dentro de una transacción. El abono es
// un UPDATE atómico en el servidor (current_stock = current_stock + quantity),
// sin read-modify-write.
func (uc *UseCase) Approve(ctx context.Context, profileID, id, notes string) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		replRepo repository.ReplenishmentRepository,
	) error {
		req, err := uc.loadForTransition(replRepo, profileID, id)
		if err != nil {
			return err
		}
		if req.Status != entity.ReplenishmentPending {
			return domain.ErrConflict
		}
		if _, err := productRepo.AdjustStock(req.ProductID, req.Quantity); err != nil {
			return err
		}
		now := time.Now()
		status := entity.ReplenishmentCompleted
		upd := repository.ReplenishmentUpdate{
			Status:      &status,
			ApprovedAt:  &now,
			CompletedAt: &now,
		}
		if notes != "" {
			upd.Notes = &notes
		}
		return replRepo.Update(id, upd)
	})
}

// Reject transiciona pending -> rejected. No toca el stock.
func (uc *UseCase) Reject(ctx context.Context, profileID, id, notes string) error {
	req, err := uc.loadForTransition(uc.replRepo, profileID, id)
	if err != nil {
		return err
	}
	if req.Status != entity.ReplenishmentPending {
		return domain.ErrConflict
	}
	status := entity.ReplenishmentRejected
	upd := repository.ReplenishmentUpdate{Status: &status}
	if notes != "" {
		upd.Notes = &notes
	}
	return uc.replRepo.Update(id, upd)
}

// Complete transiciona approved -> completed fijando solo completed_at.
// Alcanzable únicamente si un escritor externo dejó la solicitud en approved;
// el Approve propio nunca pasa por ese estado intermedio.
func (uc *UseCase) Complete(ctx context.Context, profileID, id string) error {
	req, err := uc.loadForTransition(uc.replRepo, profileID, id)
	if err != nil {
		return err
	}
	if req.Status != entity.ReplenishmentApproved {
		return domain.ErrConflict
	}
	now := time.Now()
	status := entity.ReplenishmentCompleted
	return uc.replRepo.Update(id, repository.ReplenishmentUpdate{
		Status:      &status,
		CompletedAt: &now,
	})
}

// UpdateStatus despacha la transición solicitada vía HTTP al evento correspondiente.
// Un estado destino desconocido o pending es entrada inválida.
func (uc *UseCase) UpdateStatus(ctx context.Context, profileID, id string, in dto.UpdateReplenishmentStatusRequest) error {
	switch in.Status {
	case entity.ReplenishmentApproved:
		// Aprobar colapsa directamente a completed (decisión + recepción)
		return uc.Approve(ctx, profileID, id, in.Notes)
	case entity.ReplenishmentCompleted:
		return uc.Complete(ctx, profileID, id)
	case entity.ReplenishmentRejected:
		return uc.Reject(ctx, profileID, id, in.Notes)
	default:
		return domain.ErrInvalidInput
	}
}

// Delete elimina una solicitud del perfil.
func (uc *UseCase) Delete(ctx context.Context, profileID, id string) error {
	req, err := uc.replRepo.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	if req.ProfileID != profileID {
		return domain.ErrForbidden
	}
	return uc.replRepo.Delete(id)
}

// loadForTransition carga la solicitud y aplica las guardas comunes a toda
// transición: existencia, pertenencia al perfil y estado no terminal.
func (uc *UseCase) loadForTransition(replRepo repository.ReplenishmentRepository, profileID, id string) (*entity.ReplenishmentRequest, error) {
	if profileID == "" {
		return nil, domain.ErrUnauthorized
	}
	req, err := replRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.ProfileID != profileID {
		return nil, domain.ErrForbidden
	}
	if req.IsTerminal() {
		// rejected y completed no definen transición de salida: fallo explícito,
		// nunca un cambio de estado silencioso
		return nil, domain.ErrConflict
	}
	return req, nil
}

func toResponse(r *entity.ReplenishmentRequest) *dto.ReplenishmentResponse {
	if r == nil {
		return nil
	}
	resp := &dto.ReplenishmentResponse{
		ID:          r.ID,
		ProfileID:   r.ProfileID,
		ProductID:   r.ProductID,
		SupplierID:  r.SupplierID,
		Quantity:    r.Quantity,
		Status:      r.Status,
		Notes:       r.Notes,
		RequestedBy: r.RequestedBy,
		RequestedAt: r.RequestedAt,
		ApprovedAt:  r.ApprovedAt,
		CompletedAt: r.CompletedAt,
	}
	if r.Product != nil {
		resp.Product = usecase.ToProductResponse(r.Product)
	}
	if r.Supplier != nil {
		resp.Supplier = &dto.SupplierResponse{
			ID:        r.Supplier.ID,
			ProfileID: r.Supplier.ProfileID,
			Name:      r.Supplier.Name,
			Contact:   r.Supplier.Contact,
			Phone:     r.Supplier.Phone,
			Email:     r.Supplier.Email,
			Address:   r.Supplier.Address,
			CreatedAt: r.Supplier.CreatedAt,
			UpdatedAt: r.Supplier.UpdatedAt,
		}
	}
	return resp
}
