package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estebancaso/abasto-api/internal/application/dto"
	"github.com/estebancaso/abasto-api/internal/application/replenishment"
	"github.com/estebancaso/abasto-api/internal/domain"
)

// ReplenishmentHandler maneja el ciclo de vida de solicitudes de reabastecimiento (protegido).
type ReplenishmentHandler struct {
	uc *replenishment.UseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(uc *replenishment.UseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar reabastecimiento de un producto
// @Description  Crea la solicitud en estado pending y dispara la notificación al webhook.
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReplenishmentRequest  true  "Producto, proveedor y cantidad"
// @Success      201   {object}  dto.ReplenishmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/replenishments [post]
func (h *ReplenishmentHandler) Create(c *fiber.Ctx) error {
	profileID := GetProfileID(c)
	userID := GetUserID(c)
	if profileID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateReplenishmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), profileID, userID, in)
	if err != nil {
		return replenishmentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateMulti godoc
// @Summary      Solicitar varios productos a un mismo proveedor
// @Description  Crea solicitudes en orden; si una falla se aborta y las ya creadas persisten.
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMultiReplenishmentRequest  true  "Proveedor e items"
// @Success      201   {object}  dto.MultiReplenishmentResponse
// @Success      207   {object}  dto.MultiReplenishmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replenishments/multi [post]
func (h *ReplenishmentHandler) CreateMulti(c *fiber.Ctx) error {
	profileID := GetProfileID(c)
	userID := GetUserID(c)
	if profileID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMultiReplenishmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items es requerido"})
	}
	out, err := h.uc.CreateMulti(c.Context(), profileID, userID, in)
	// 207 cuando el lote se abortó a mitad: el cliente ve qué se creó y dónde
	// falló, aunque el caso de uso también devuelva error.
	if out != nil && out.FailedProductID != "" {
		return c.Status(fiber.StatusMultiStatus).JSON(out)
	}
	if err != nil {
		return replenishmentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes de reabastecimiento
// @Tags         replenishments
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ReplenishmentListResponse
// @Router       /api/replenishments [get]
func (h *ReplenishmentHandler) List(c *fiber.Ctx) error {
	profileID := GetProfileID(c)
	userID := GetUserID(c)
	if profileID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), profileID, userID, limit, offset)
	if err != nil {
		return replenishmentError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar el estado de una solicitud
// @Description  approved abona el stock y cierra la solicitud; rejected y completed son terminales.
// @Tags         replenishments
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.UpdateReplenishmentStatusRequest  true  "Nuevo estado"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/replenishments/{id}/status [patch]
func (h *ReplenishmentHandler) UpdateStatus(c *fiber.Ctx) error {
	profileID := GetProfileID(c)
	if profileID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateReplenishmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), profileID, id, in); err != nil {
		return replenishmentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar una solicitud
// @Tags         replenishments
// @Security     Bearer
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/replenishments/{id} [delete]
func (h *ReplenishmentHandler) Delete(c *fiber.Ctx) error {
	profileID := GetProfileID(c)
	if profileID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), profileID, id); err != nil {
		return replenishmentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// replenishmentError mapea errores de dominio del ciclo de reabastecimiento a HTTP.
func replenishmentError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud, producto o proveedor no encontrado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case domain.ErrConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TERMINAL_STATE", Message: "la solicitud ya está en un estado terminal"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "el ajuste dejaría stock negativo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
