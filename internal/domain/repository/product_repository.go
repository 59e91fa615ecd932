package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List() ([]*entity.Product, error)
	// DecrementStock descuenta qty solo si hay stock suficiente
	// (UPDATE condicional). Devuelve false si no afectó filas.
	DecrementStock(productID string, qty int) (bool, error)
	CountSaleReferences(productID string) (int, error)
	Delete(id string) error
}
