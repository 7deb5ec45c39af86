package entity

import "time"

// DefaultSupplierName nombre centinela del proveedor que se crea automáticamente
// cuando un perfil no tiene ninguno. La unicidad por (profile_id, name) garantiza
// que el bootstrap sea idempotente.
const DefaultSupplierName = "default_"

// Supplier representa un proveedor del perfil. Referenciado por Product y
// ReplenishmentRequest; no se elimina mientras esté referenciado (FK en la DB).
type Supplier struct {
	ID        string
	ProfileID string
	Name      string
	Contact   string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
