package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estebancaso/abasto-api/internal/application/dto"
	"github.com/estebancaso/abasto-api/internal/application/replenishment"
	"github.com/estebancaso/abasto-api/internal/domain/entity"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
	apphttp "github.com/estebancaso/abasto-api/internal/interfaces/http"
	"github.com/estebancaso/abasto-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes para el handler de reabastecimiento
// ──────────────────────────────────────────────────────────────────────────────

// stubReplRepo guarda en memoria y puede fallar el insert de un producto concreto.
type stubReplRepo struct {
	mu      sync.Mutex
	created []*entity.ReplenishmentRequest
	failOn  string
}

func (s *stubReplRepo) Create(req *entity.ReplenishmentRequest) (*entity.ReplenishmentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failOn != "" && req.ProductID == s.failOn {
		return nil, errors.New("insert falló")
	}
	s.created = append(s.created, req)
	return req, nil
}

func (s *stubReplRepo) GetByID(string) (*entity.ReplenishmentRequest, error) { return nil, nil }
func (s *stubReplRepo) ListByProfile(string, int, int) ([]*entity.ReplenishmentRequest, error) {
	return nil, nil
}
func (s *stubReplRepo) ListByRequester(string, int, int) ([]*entity.ReplenishmentRequest, error) {
	return nil, nil
}
func (s *stubReplRepo) Update(string, repository.ReplenishmentUpdate) error { return nil }
func (s *stubReplRepo) Delete(string) error                                 { return nil }

// stubTxRunner nunca se usa en los tests de creación.
type stubTxRunner struct{}

func (stubTxRunner) Run(context.Context, func(repository.ProductRepository, repository.ReplenishmentRepository) error) error {
	return errors.New("sin transacciones en este test")
}

// buildReplApp monta el handler detrás de un middleware que inyecta la identidad,
// sin pasar por el parseo de JWT (eso ya lo cubren los tests del middleware).
func buildReplApp(repo *stubReplRepo) *fiber.App {
	uc := replenishment.NewUseCase(stubTxRunner{}, repo, replenishment.NopNotifier{}, logger.Nop())
	h := apphttp.NewReplenishmentHandler(uc)

	app := fiber.New()
	app.Post("/replenishments/multi",
		func(c *fiber.Ctx) error {
			c.Locals(apphttp.LocalUserID, testUserID)
			c.Locals(apphttp.LocalProfileID, testProfileID)
			c.Locals(apphttp.LocalRole, entity.RoleAdmin)
			return c.Next()
		},
		h.CreateMulti,
	)
	return app
}

func postMulti(t *testing.T, app *fiber.App, in dto.CreateMultiReplenishmentRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(in)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/replenishments/multi", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CreateMulti
// ──────────────────────────────────────────────────────────────────────────────

// Lote completo sin fallos → 201 con todas las solicitudes creadas.
func TestCreateMulti_LoteCompletoDevuelve201(t *testing.T) {
	repo := &stubReplRepo{}
	app := buildReplApp(repo)

	resp := postMulti(t, app, dto.CreateMultiReplenishmentRequest{
		SupplierID: "sup-1",
		Items: []dto.MultiReplenishmentItem{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: 3},
		},
	})
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.MultiReplenishmentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Created, 2)
	assert.Empty(t, out.FailedProductID)
	assert.Len(t, repo.created, 2)
}

// Fallo a mitad del lote → 207 con las creadas y el producto donde se abortó.
// Las solicitudes ya insertadas persisten en el repositorio.
func TestCreateMulti_FalloParcialDevuelve207ConResultados(t *testing.T) {
	repo := &stubReplRepo{failOn: "p2"}
	app := buildReplApp(repo)

	resp := postMulti(t, app, dto.CreateMultiReplenishmentRequest{
		SupplierID: "sup-1",
		Items: []dto.MultiReplenishmentItem{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: 3},
			{ProductID: "p3", Quantity: 2},
		},
	})
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusMultiStatus, resp.StatusCode)

	var out dto.MultiReplenishmentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Created, 1)
	assert.Equal(t, "p1", out.Created[0].ProductID)
	assert.Equal(t, "p2", out.FailedProductID)
	assert.NotEmpty(t, out.FailedReason)

	// p1 persistió; p3 nunca se intentó.
	require.Len(t, repo.created, 1)
	assert.Equal(t, "p1", repo.created[0].ProductID)
}

// Cantidad inválida en un item intermedio también reporta resultados parciales.
func TestCreateMulti_CantidadInvalidaDevuelve207(t *testing.T) {
	repo := &stubReplRepo{}
	app := buildReplApp(repo)

	resp := postMulti(t, app, dto.CreateMultiReplenishmentRequest{
		SupplierID: "sup-1",
		Items: []dto.MultiReplenishmentItem{
			{ProductID: "p1", Quantity: 5},
			{ProductID: "p2", Quantity: 0},
		},
	})
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusMultiStatus, resp.StatusCode)

	var out dto.MultiReplenishmentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Created, 1)
	assert.Equal(t, "p2", out.FailedProductID)
}

// Lote vacío → 400 sin tocar el repositorio.
func TestCreateMulti_SinItemsDevuelve400(t *testing.T) {
	repo := &stubReplRepo{}
	app := buildReplApp(repo)

	resp := postMulti(t, app, dto.CreateMultiReplenishmentRequest{SupplierID: "sup-1"})
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "items")
	assert.Empty(t, repo.created)
}
