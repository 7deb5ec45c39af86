package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/estebancaso/abasto-api/internal/application/dto"
	"github.com/estebancaso/abasto-api/internal/domain"
	"github.com/estebancaso/abasto-api/internal/domain/entity"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
	"github.com/estebancaso/abasto-api/internal/domain/stock"
)

// ProductUseCase casos de uso CRUD para productos. CurrentStock solo se muta vía
// ventas y reabastecimientos; Update nunca lo toca.
type ProductUseCase struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, supplierRepo repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, supplierRepo: supplierRepo}
}

// Create crea un producto. Los campos de stock deben ser no negativos.
// No se exige MinStock <= MaxStock.
func (uc *ProductUseCase) Create(profileID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if profileID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock < 0 || in.MinStock < 0 || in.MaxStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.ProfileID != profileID {
		return nil, domain.ErrNotFound
	}
	if in.SKU != "" {
		existing, _ := uc.repo.GetByProfileAndSKU(profileID, in.SKU)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if in.Unit == "" {
		in.Unit = "pieces"
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		ProfileID:    profileID,
		SupplierID:   in.SupplierID,
		SKU:          in.SKU,
		Name:         in.Name,
		Category:     in.Category,
		Description:  in.Description,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		UnitPrice:    in.UnitPrice,
		Unit:         in.Unit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar CurrentStock.
func (uc *ProductUseCase) Update(profileID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.ProfileID != profileID {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil || supplier.ProfileID != profileID {
			return nil, domain.ErrNotFound
		}
		product.SupplierID = *in.SupplierID
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		if *in.MaxStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MaxStock = *in.MaxStock
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos del perfil con paginación.
func (uc *ProductUseCase) List(profileID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByProfile(profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// ToProductResponse mapea la entidad a su DTO, calculando clasificación de stock
// y cantidades sugeridas con el evaluador de dominio.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                  p.ID,
		ProfileID:           p.ProfileID,
		SupplierID:          p.SupplierID,
		SKU:                 p.SKU,
		Name:                p.Name,
		Category:            p.Category,
		Description:         p.Description,
		CurrentStock:        p.CurrentStock,
		MinStock:            p.MinStock,
		MaxStock:            p.MaxStock,
		UnitPrice:           p.UnitPrice,
		Unit:                p.Unit,
		StockStatus:         string(stock.ClassifyProduct(p)),
		SuggestedQuantities: stock.SuggestForProduct(p),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
