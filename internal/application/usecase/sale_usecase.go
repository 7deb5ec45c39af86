package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/estebancaso/abasto-api/internal/application/dto"
	"github.com/estebancaso/abasto-api/internal/domain"
	"github.com/estebancaso/abasto-api/internal/domain/entity"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
)

// SalesTxRunner ejecuta el cierre del día dentro de una transacción: o se
// registran todas las ventas del lote con sus descuentos de stock, o ninguna.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// SaleUseCase registra ventas (cierre del día) y las consulta para reportes.
// Cada venta congela el precio unitario al momento de vender y descuenta el
// stock del producto con un UPDATE atómico; stock insuficiente aborta el lote.
type SaleUseCase struct {
	txRunner SalesTxRunner
	saleRepo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner SalesTxRunner, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// RecordDayClosing registra el lote de ventas del cierre del día.
func (uc *SaleUseCase) RecordDayClosing(ctx context.Context, profileID, userID string, in dto.DayClosingRequest) (*dto.DayClosingResponse, error) {
	if userID == "" || profileID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	resp := &dto.DayClosingResponse{TotalValue: decimal.Zero}
	err := uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, item := range in.Items {
			product, err := productRepo.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.ProfileID != profileID {
				return domain.ErrNotFound
			}
			// Descuento atómico; falla con ErrInsufficientStock si quedaría negativo
			if _, err := productRepo.AdjustStock(item.ProductID, -item.Quantity); err != nil {
				return err
			}
			total := product.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
			sale := &entity.Sale{
				ID:         uuid.New().String(),
				ProfileID:  profileID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  product.UnitPrice,
				TotalValue: total,
				Date:       date,
				RecordedBy: userID,
				CreatedAt:  time.Now(),
			}
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
			resp.Sales = append(resp.Sales, *toSaleResponse(sale))
			resp.TotalUnits += item.Quantity
			resp.TotalValue = resp.TotalValue.Add(total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List lista ventas del perfil en un rango de fechas.
func (uc *SaleUseCase) List(profileID string, from, to time.Time, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.ListByProfile(profileID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:         s.ID,
		ProfileID:  s.ProfileID,
		ProductID:  s.ProductID,
		Quantity:   s.Quantity,
		UnitPrice:  s.UnitPrice,
		TotalValue: s.TotalValue,
		Date:       s.Date,
		RecordedBy: s.RecordedBy,
		CreatedAt:  s.CreatedAt,
	}
}
