package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus items (DIP).
// Las ventas son inmutables: no hay Update ni Delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con items anidados, o nil si no existe.
	GetByID(id string) (*entity.Sale, error)
	// List devuelve todas las ventas, la más reciente primero, con items.
	List() ([]*entity.Sale, error)
}
