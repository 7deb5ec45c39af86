package entity

import "time"

// Estados de una solicitud de reabastecimiento. El ciclo de vida es monótono:
// pending -> approved/rejected/completed; rejected y completed son terminales.
const (
	ReplenishmentPending   = "pending"
	ReplenishmentApproved  = "approved"
	ReplenishmentRejected  = "rejected"
	ReplenishmentCompleted = "completed"
)

// ReplenishmentRequest representa una solicitud de reabastecer un producto desde
// un proveedor, con ciclo de aprobación. Product y Supplier son snapshots unidos
// al leer el registro, no referencias vivas.
type ReplenishmentRequest struct {
	ID          string
	ProfileID   string
	ProductID   string
	SupplierID  string
	Quantity    int64
	Status      string
	Notes       string
	RequestedBy string
	RequestedAt time.Time
	ApprovedAt  *time.Time
	CompletedAt *time.Time
	UpdatedAt   time.Time

	Product  *Product
	Supplier *Supplier
}

// IsTerminal indica si la solicitud está en un estado final (sin transiciones definidas).
func (r *ReplenishmentRequest) IsTerminal() bool {
	return r.Status == ReplenishmentRejected || r.Status == ReplenishmentCompleted
}

// ValidReplenishmentStatus valida un estado recibido desde fuera del dominio.
func ValidReplenishmentStatus(s string) bool {
	switch s {
	case ReplenishmentPending, ReplenishmentApproved, ReplenishmentRejected, ReplenishmentCompleted:
		return true
	}
	return false
}
