// Package analytics contiene los casos de uso de la pestaña de reportes:
// resumen de inventario con alertas, resumen de ventas y exportación a PDF.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estebancaso/abasto-api/internal/application/dto"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
	"github.com/estebancaso/abasto-api/internal/domain/stock"
)

// maxReportProducts tope de productos considerados en un reporte.
const maxReportProducts = 1000

// InventoryReportPDFGenerator puerto para renderizar el reporte de inventario como PDF.
type InventoryReportPDFGenerator interface {
	GenerateInventoryReport(ctx context.Context, profileName string, summary *dto.InventorySummaryDTO) ([]byte, error)
}

// ReportUseCase genera los resúmenes del dashboard de reportes.
//
// Fuente de datos: repositorios read-only; las alertas y la valuación se derivan
// en memoria con el evaluador de stock, no se persisten.
type ReportUseCase struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	profileRepo  repository.ProfileRepository
	pdfGenerator InventoryReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	profileRepo repository.ProfileRepository,
	pdfGenerator InventoryReportPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		profileRepo:  profileRepo,
		pdfGenerator: pdfGenerator,
	}
}

// InventorySummary construye el resumen de inventario del perfil: conteos por
// estado de stock, alertas activas y valuación total (Σ stock × precio unitario).
func (uc *ReportUseCase) InventorySummary(ctx context.Context, profileID string, includeRows bool) (*dto.InventorySummaryDTO, error) {
	products, err := uc.productRepo.ListByProfile(profileID, maxReportProducts, 0)
	if err != nil {
		return nil, err
	}

	summary := &dto.InventorySummaryDTO{
		TotalProducts:  len(products),
		TotalValuation: decimal.Zero,
	}
	for _, p := range products {
		valuation := decimal.Zero
		if p.CurrentStock > 0 {
			valuation = p.UnitPrice.Mul(decimal.NewFromInt(p.CurrentStock))
		}
		summary.TotalValuation = summary.TotalValuation.Add(valuation)

		status := stock.ClassifyProduct(p)
		switch status {
		case stock.StatusGood:
			summary.GoodCount++
		case stock.StatusLow:
			summary.LowCount++
		case stock.StatusOut:
			summary.OutCount++
		}
		if includeRows {
			summary.Rows = append(summary.Rows, dto.InventoryReportRow{
				Name:        p.Name,
				Category:    p.Category,
				Current:     p.CurrentStock,
				Min:         p.MinStock,
				Max:         p.MaxStock,
				Unit:        p.Unit,
				UnitPrice:   p.UnitPrice,
				StockStatus: string(status),
				Valuation:   valuation,
			})
		}
	}
	for _, a := range stock.ActiveAlerts(products) {
		summary.Alerts = append(summary.Alerts, dto.StockAlertDTO{
			ProductID:   a.ProductID,
			ProductName: a.ProductName,
			Type:        a.Type,
			Current:     a.Current,
			Min:         a.Min,
		})
	}
	return summary, nil
}

// SalesSummary resume las ventas del perfil en el rango [from, to].
func (uc *ReportUseCase) SalesSummary(ctx context.Context, profileID string, from, to time.Time) (*dto.SalesSummaryDTO, error) {
	units, value, err := uc.saleRepo.Summarize(profileID, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryDTO{
		From:       from,
		To:         to,
		TotalUnits: units,
		TotalValue: value,
	}, nil
}

// InventoryReportPDF genera el PDF del reporte de inventario.
func (uc *ReportUseCase) InventoryReportPDF(ctx context.Context, profileID string) ([]byte, error) {
	summary, err := uc.InventorySummary(ctx, profileID, true)
	if err != nil {
		return nil, err
	}
	profileName := ""
	if profile, err := uc.profileRepo.GetByID(profileID); err == nil && profile != nil {
		profileName = profile.Name
	}
	return uc.pdfGenerator.GenerateInventoryReport(ctx, profileName, summary)
}
