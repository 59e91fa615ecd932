package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados del stock de un producto.
const (
	StatusInStock    = "In Stock"
	StatusLowStock   = "Low Stock"
	StatusOutOfStock = "Out of Stock"
)

// DefaultLowStockThreshold umbral de alerta cuando no se indica uno.
const DefaultLowStockThreshold = 10

// Product representa un artículo del inventario. SKU es único.
// CategoryID puede estar vacío (producto sin categoría); CategoryName
// es un campo de lectura que los repositorios llenan con JOIN.
type Product struct {
	ID                string
	Name              string
	SKU               string
	CategoryID        string
	CategoryName      string
	Price             decimal.Decimal
	Stock             int
	LowStockThreshold int
	Description       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Status deriva el estado a partir del stock y el umbral:
// 0 → Out of Stock; 0 < stock <= umbral → Low Stock; resto → In Stock.
func (p *Product) Status() string {
	switch {
	case p.Stock == 0:
		return StatusOutOfStock
	case p.Stock <= p.LowStockThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
