package entity

import "time"

// Profile representa la cuenta de negocio que agrupa inventario, proveedores y ventas.
// Toda la data operativa pertenece a un Profile; el User es solo la identidad autenticada.
type Profile struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
