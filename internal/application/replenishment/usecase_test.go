package replenishment_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estebancaso/abasto-api/internal/application/dto"
	"github.com/estebancaso/abasto-api/internal/application/replenishment"
	"github.com/estebancaso/abasto-api/internal/domain"
	"github.com/estebancaso/abasto-api/internal/domain/entity"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
	"github.com/estebancaso/abasto-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeReplRepo struct {
	mu       sync.Mutex
	byID     map[string]*entity.ReplenishmentRequest
	failOn   string // ProductID en el que Create debe fallar
	failList bool   // ListByProfile devuelve error (fuerza el fallback)
}

func newFakeReplRepo() *fakeReplRepo {
	return &fakeReplRepo{byID: map[string]*entity.ReplenishmentRequest{}}
}

func (f *fakeReplRepo) Create(req *entity.ReplenishmentRequest) (*entity.ReplenishmentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && req.ProductID == f.failOn {
		return nil, errors.New("insert falló")
	}
	cp := *req
	f.byID[req.ID] = &cp
	return &cp, nil
}

func (f *fakeReplRepo) GetByID(id string) (*entity.ReplenishmentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReplRepo) ListByProfile(profileID string, limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	if f.failList {
		return nil, errors.New("consulta por perfil no disponible")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ReplenishmentRequest
	for _, r := range f.byID {
		if r.ProfileID == profileID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortByRequestedAtDesc(out)
	return out, nil
}

func (f *fakeReplRepo) ListByRequester(userID string, limit, offset int) ([]*entity.ReplenishmentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ReplenishmentRequest
	for _, r := range f.byID {
		if r.RequestedBy == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sortByRequestedAtDesc(out)
	return out, nil
}

// Mismo orden que los listados reales: más recientes primero.
func sortByRequestedAtDesc(rs []*entity.ReplenishmentRequest) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].RequestedAt.After(rs[j].RequestedAt) })
}

func (f *fakeReplRepo) Update(id string, upd repository.ReplenishmentUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if upd.Status != nil {
		r.Status = *upd.Status
	}
	if upd.Notes != nil {
		r.Notes = *upd.Notes
	}
	if upd.Quantity != nil {
		r.Quantity = *upd.Quantity
	}
	if upd.ApprovedAt != nil {
		r.ApprovedAt = upd.ApprovedAt
	}
	if upd.CompletedAt != nil {
		r.CompletedAt = upd.CompletedAt
	}
	return nil
}

func (f *fakeReplRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeProductRepo struct {
	mu    sync.Mutex
	stock map[string]int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{stock: map[string]int64{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error                { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error)    { return nil, nil }
func (f *fakeProductRepo) Update(p *entity.Product) error                { return nil }
func (f *fakeProductRepo) Delete(id string) error                        { return nil }
func (f *fakeProductRepo) GetByProfileAndSKU(profileID, sku string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListByProfile(profileID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) AdjustStock(productID string, delta int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.stock[productID] + delta
	if next < 0 {
		return 0, domain.ErrInsufficientStock
	}
	f.stock[productID] = next
	return next, nil
}

// fakeTxRunner ejecuta el callback sin transacción real, con los fakes.
type fakeTxRunner struct {
	productRepo *fakeProductRepo
	replRepo    *fakeReplRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	replRepo repository.ReplenishmentRepository,
) error) error {
	return fn(f.productRepo, f.replRepo)
}

// recordingNotifier captura las notificaciones para poder afirmarlas.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
	done  chan struct{}
}

func (n *recordingNotifier) NotifyReorder(ctx context.Context, phone, product string, qty int64) error {
	n.mu.Lock()
	n.calls = append(n.calls, product)
	n.mu.Unlock()
	if n.done != nil {
		close(n.done)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	profileA   = "profile-a"
	profileB   = "profile-b"
	userA      = "user-a"
	productX   = "product-x"
	supplierS  = "supplier-s"
)

func newTestUseCase() (*replenishment.UseCase, *fakeReplRepo, *fakeProductRepo) {
	replRepo := newFakeReplRepo()
	productRepo := newFakeProductRepo()
	tx := &fakeTxRunner{productRepo: productRepo, replRepo: replRepo}
	uc := replenishment.NewUseCase(tx, replRepo, replenishment.NopNotifier{}, logger.Nop())
	return uc, replRepo, productRepo
}

func createPending(t *testing.T, uc *replenishment.UseCase, qty int64) string {
	t.Helper()
	out, err := uc.Create(context.Background(), profileA, userA, dto.CreateReplenishmentRequest{
		ProductID:  productX,
		SupplierID: supplierS,
		Quantity:   qty,
	})
	require.NoError(t, err)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_QuedaPending(t *testing.T) {
	uc, replRepo, _ := newTestUseCase()

	out, err := uc.Create(context.Background(), profileA, userA, dto.CreateReplenishmentRequest{
		ProductID:  productX,
		SupplierID: supplierS,
		Quantity:   20,
		Notes:      "urgente",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReplenishmentPending, out.Status)
	assert.Equal(t, int64(20), out.Quantity)
	assert.Equal(t, userA, out.RequestedBy)
	assert.Nil(t, out.ApprovedAt, "una solicitud recién creada no tiene approved_at")
	assert.Nil(t, out.CompletedAt)

	stored, err := replRepo.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "la solicitud debe quedar persistida")
	assert.Equal(t, entity.ReplenishmentPending, stored.Status)
}

func TestCreate_CantidadInvalida_NoTocaElStore(t *testing.T) {
	uc, replRepo, _ := newTestUseCase()

	for _, qty := range []int64{0, -5} {
		_, err := uc.Create(context.Background(), profileA, userA, dto.CreateReplenishmentRequest{
			ProductID:  productX,
			SupplierID: supplierS,
			Quantity:   qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity %d debe rechazarse", qty)
	}
	assert.Empty(t, replRepo.byID, "no debe escribirse nada con cantidades inválidas")
}

func TestCreate_SinAutenticacion_Retorna_Unauthorized(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Create(context.Background(), "", "", dto.CreateReplenishmentRequest{
		ProductID:  productX,
		SupplierID: supplierS,
		Quantity:   10,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreate_DisparaNotificacion(t *testing.T) {
	replRepo := newFakeReplRepo()
	productRepo := newFakeProductRepo()
	tx := &fakeTxRunner{productRepo: productRepo, replRepo: replRepo}
	notifier := &recordingNotifier{done: make(chan struct{})}
	uc := replenishment.NewUseCase(tx, replRepo, notifier, logger.Nop())

	_, err := uc.Create(context.Background(), profileA, userA, dto.CreateReplenishmentRequest{
		ProductID:  productX,
		SupplierID: supplierS,
		Quantity:   5,
	})
	require.NoError(t, err)

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación de reorden nunca se disparó")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve / Reject / Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_AbonaStockYCierra(t *testing.T) {
	uc, replRepo, productRepo := newTestUseCase()
	productRepo.stock[productX] = 3
	id := createPending(t, uc, 25)

	err := uc.Approve(context.Background(), profileA, id, "recibido completo")
	require.NoError(t, err)

	assert.Equal(t, int64(28), productRepo.stock[productX],
		"el stock debe incrementarse exactamente en la cantidad solicitada")

	stored, _ := replRepo.GetByID(id)
	assert.Equal(t, entity.ReplenishmentCompleted, stored.Status)
	assert.NotNil(t, stored.ApprovedAt, "aprobar fija approved_at")
	assert.NotNil(t, stored.CompletedAt, "aprobar fija también completed_at")
	assert.Equal(t, "recibido completo", stored.Notes)
}

func TestReject_NoTocaStock(t *testing.T) {
	uc, replRepo, productRepo := newTestUseCase()
	productRepo.stock[productX] = 7
	id := createPending(t, uc, 25)

	err := uc.Reject(context.Background(), profileA, id, "proveedor sin inventario")
	require.NoError(t, err)

	assert.Equal(t, int64(7), productRepo.stock[productX], "rechazar no debe mutar el stock")

	stored, _ := replRepo.GetByID(id)
	assert.Equal(t, entity.ReplenishmentRejected, stored.Status)
	assert.Nil(t, stored.ApprovedAt)
	assert.Nil(t, stored.CompletedAt)
}

func TestTransicion_EstadoTerminal_RetornaConflict(t *testing.T) {
	uc, _, _ := newTestUseCase()

	for _, terminal := range []string{entity.ReplenishmentRejected, entity.ReplenishmentCompleted} {
		id := createPending(t, uc, 10)
		if terminal == entity.ReplenishmentRejected {
			require.NoError(t, uc.Reject(context.Background(), profileA, id, ""))
		} else {
			require.NoError(t, uc.Approve(context.Background(), profileA, id, ""))
		}

		err := uc.Approve(context.Background(), profileA, id, "")
		assert.ErrorIs(t, err, domain.ErrConflict,
			"transicionar desde %s debe fallar explícitamente", terminal)

		err = uc.Reject(context.Background(), profileA, id, "")
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
}

func TestComplete_SoloDesdeApproved(t *testing.T) {
	uc, replRepo, _ := newTestUseCase()
	id := createPending(t, uc, 10)

	// pending -> complete directo no es una transición válida
	err := uc.Complete(context.Background(), profileA, id)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Un escritor externo dejó la solicitud en approved
	status := entity.ReplenishmentApproved
	require.NoError(t, replRepo.Update(id, repository.ReplenishmentUpdate{Status: &status}))

	require.NoError(t, uc.Complete(context.Background(), profileA, id))
	stored, _ := replRepo.GetByID(id)
	assert.Equal(t, entity.ReplenishmentCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)
	assert.Nil(t, stored.ApprovedAt, "complete no retro-fija approved_at")
}

func TestTransicion_DeOtroPerfil_RetornaForbidden(t *testing.T) {
	uc, _, _ := newTestUseCase()
	id := createPending(t, uc, 10)

	err := uc.Approve(context.Background(), profileB, id, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_EstadoDesconocido_RetornaInvalidInput(t *testing.T) {
	uc, _, _ := newTestUseCase()
	id := createPending(t, uc, 10)

	for _, s := range []string{"pending", "cancelado", ""} {
		err := uc.UpdateStatus(context.Background(), profileA, id, dto.UpdateReplenishmentStatusRequest{Status: s})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado %q debe rechazarse", s)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateMulti
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMulti_TodoOK(t *testing.T) {
	uc, replRepo, _ := newTestUseCase()

	out, err := uc.CreateMulti(context.Background(), profileA, userA, dto.CreateMultiReplenishmentRequest{
		SupplierID: supplierS,
		Items: []dto.MultiReplenishmentItem{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: 10},
			{ProductID: "p3", Quantity: 15},
		},
	})
	require.NoError(t, err)
	assert.Len(t, out.Created, 3)
	assert.Empty(t, out.FailedProductID)
	assert.Len(t, replRepo.byID, 3)
}

func TestCreateMulti_AbortaEnElPrimerFallo_YLasCreadasPersisten(t *testing.T) {
	uc, replRepo, _ := newTestUseCase()
	replRepo.failOn = "p2"

	out, err := uc.CreateMulti(context.Background(), profileA, userA, dto.CreateMultiReplenishmentRequest{
		SupplierID: supplierS,
		Items: []dto.MultiReplenishmentItem{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: 10},
			{ProductID: "p3", Quantity: 15},
		},
	})
	require.Error(t, err)

	assert.Len(t, out.Created, 1, "solo p1 alcanzó a crearse")
	assert.Equal(t, "p2", out.FailedProductID)
	assert.NotEmpty(t, out.FailedReason)
	assert.Len(t, replRepo.byID, 1, "p1 persiste; no hay rollback compensatorio")
	assert.Equal(t, "p1", out.Created[0].ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_DegradaASolicitudesDelUsuario(t *testing.T) {
	uc, replRepo, _ := newTestUseCase()
	createPending(t, uc, 5)
	createPending(t, uc, 10)
	replRepo.failList = true

	out, err := uc.List(context.Background(), profileA, userA, 20, 0)
	require.NoError(t, err, "el fallo del listado por perfil degrada, no aborta")
	assert.Len(t, out.Items, 2)
}

// El listado devuelve las solicitudes más recientes primero, sin importar el
// orden de inserción.
func TestList_MasRecientesPrimero(t *testing.T) {
	uc, replRepo, _ := newTestUseCase()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"req-vieja", "req-media", "req-nueva"} {
		replRepo.byID[id] = &entity.ReplenishmentRequest{
			ID:          id,
			ProfileID:   profileA,
			ProductID:   productX,
			SupplierID:  supplierS,
			Quantity:    1,
			Status:      entity.ReplenishmentPending,
			RequestedBy: userA,
			RequestedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}

	out, err := uc.List(context.Background(), profileA, userA, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "req-nueva", out.Items[0].ID)
	assert.Equal(t, "req-media", out.Items[1].ID)
	assert.Equal(t, "req-vieja", out.Items[2].ID)

	// El fallback por usuario conserva el mismo orden.
	replRepo.failList = true
	out, err = uc.List(context.Background(), profileA, userA, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "req-nueva", out.Items[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente en AdjustStock negativo (guarda del repo)
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_NegativoMasAllaDelStock_Falla(t *testing.T) {
	repo := newFakeProductRepo()
	repo.stock[productX] = 4

	_, err := repo.AdjustStock(productX, -5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(4), repo.stock[productX], "el stock no cambia si el ajuste falla")

	next, err := repo.AdjustStock(productX, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), next, "descontar hasta cero es válido")
}
