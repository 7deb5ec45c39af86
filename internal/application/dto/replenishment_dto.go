package dto

import "time"

// CreateReplenishmentRequest entrada para solicitar reabastecimiento de un producto.
type CreateReplenishmentRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	SupplierID string `json:"supplier_id" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
	Notes      string `json:"notes"`
}

// MultiReplenishmentItem una línea de la solicitud múltiple.
type MultiReplenishmentItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// CreateMultiReplenishmentRequest entrada para solicitar varios productos a un mismo proveedor.
type CreateMultiReplenishmentRequest struct {
	SupplierID string                   `json:"supplier_id" validate:"required"`
	Items      []MultiReplenishmentItem `json:"items" validate:"required,min=1"`
}

// UpdateReplenishmentStatusRequest entrada para transicionar el estado de una solicitud.
type UpdateReplenishmentStatusRequest struct {
	Status string `json:"status" validate:"required"` // approved | rejected | completed
	Notes  string `json:"notes"`
}

// ReplenishmentResponse salida de una solicitud, con snapshots de producto y proveedor.
type ReplenishmentResponse struct {
	ID          string            `json:"id"`
	ProfileID   string            `json:"profile_id"`
	ProductID   string            `json:"product_id"`
	SupplierID  string            `json:"supplier_id"`
	Quantity    int64             `json:"quantity"`
	Status      string            `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	RequestedBy string            `json:"requested_by"`
	RequestedAt time.Time         `json:"requested_at"`
	ApprovedAt  *time.Time        `json:"approved_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Product     *ProductResponse  `json:"product,omitempty"`
	Supplier    *SupplierResponse `json:"supplier,omitempty"`
}

// ReplenishmentListResponse lista paginada de solicitudes.
type ReplenishmentListResponse struct {
	Items []ReplenishmentResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// MultiReplenishmentResponse resultado de la solicitud múltiple: qué se creó y,
// si hubo fallo, en qué producto se abortó. Las solicitudes ya insertadas persisten.
type MultiReplenishmentResponse struct {
	Created         []ReplenishmentResponse `json:"created"`
	FailedProductID string                  `json:"failed_product_id,omitempty"`
	FailedReason    string                  `json:"failed_reason,omitempty"`
}
