package entity

import "time"

// Category agrupa productos. El nombre es único en toda la tienda.
// No puede eliminarse mientras tenga productos asociados.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
