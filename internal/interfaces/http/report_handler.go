package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estebancaso/abasto-api/internal/application/analytics"
	"github.com/estebancaso/abasto-api/internal/application/dto"
)

// ReportHandler expone los resúmenes de inventario y ventas (protegido).
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventorySummary godoc
// @Summary      Resumen de inventario
// @Description  Conteos por estado de stock, alertas activas y valuación total.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        rows  query  bool  false  "Incluir el detalle por producto"
// @Success      200   {object}  dto.InventorySummaryDTO
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) InventorySummary(c *fiber.Ctx) error {
	profileID := GetProfileID(c)
	if profileID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "profile_id requerido"})
	}
	includeRows := c.QueryBool("rows", false)
	out, err := h.uc.InventorySummary(c.Context(), profileID, includeRows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SalesSummary godoc
// @Summary      Resumen de ventas en un rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (RFC3339)"
// @Param        to    query  string  false  "Fecha final (RFC3339)"
// @Success      200   {object}  dto.SalesSummaryDTO
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	profileID := GetProfileID(c)
	if profileID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "profile_id requerido"})
	}
	from, to, err := dateRangeParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339"})
	}
	out, err := h.uc.SalesSummary(c.Context(), profileID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/inventory/pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	profileID := GetProfileID(c)
	if profileID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "profile_id requerido"})
	}
	pdfBytes, err := h.uc.InventoryReportPDF(c.Context(), profileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.pdf"`)
	return c.Send(pdfBytes)
}
