package repository

import "github.com/jhoicas/PuntoVenta-api/internal/domain/entity"

// CategoryWithCount agrega el número de productos que posee la categoría.
type CategoryWithCount struct {
	Category     entity.Category
	ProductCount int
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	List() ([]CategoryWithCount, error)
	CountProducts(categoryID string) (int, error)
	Delete(id string) error
}
