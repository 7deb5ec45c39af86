package usecase

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/estebancaso/abasto-api/internal/application/dto"
	"github.com/estebancaso/abasto-api/internal/domain"
	"github.com/estebancaso/abasto-api/internal/domain/entity"
	"github.com/estebancaso/abasto-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores, más el bootstrap del
// proveedor por defecto del perfil.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. El nombre es único por perfil.
func (uc *SupplierUseCase) Create(profileID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if profileID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByProfileAndName(profileID, in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		Name:      in.Name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// EnsureDefault garantiza que el perfil tenga el proveedor centinela "default_".
// Idempotente: si ya existe lo devuelve sin crear nada. Reemplaza el bootstrap
// que la versión original escondía en el ciclo de render del dashboard.
func (uc *SupplierUseCase) EnsureDefault(profileID, contact, email string) (*dto.SupplierResponse, error) {
	if profileID == "" {
		return nil, domain.ErrUnauthorized
	}
	existing, err := uc.repo.GetByProfileAndName(profileID, entity.DefaultSupplierName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return toSupplierResponse(existing), nil
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		Name:      entity.DefaultSupplierName,
		Contact:   contact,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		// Carrera con otra petición: el unique (profile_id, name) ya lo creó
		if errors.Is(err, domain.ErrDuplicate) {
			again, gerr := uc.repo.GetByProfileAndName(profileID, entity.DefaultSupplierName)
			if gerr == nil && again != nil {
				return toSupplierResponse(again), nil
			}
		}
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores del perfil con paginación.
func (uc *SupplierUseCase) List(profileID string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.ListByProfile(profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un proveedor existente.
func (uc *SupplierUseCase) Update(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.Contact != nil {
		supplier.Contact = *in.Contact
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Delete elimina un proveedor por ID. Falla si productos o solicitudes lo referencian (FK).
func (uc *SupplierUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:        s.ID,
		ProfileID: s.ProfileID,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
