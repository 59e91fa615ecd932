package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentMobile = "mobile"
)

// ValidPaymentMethod verifica que el método de pago sea uno de los aceptados.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentMobile
}

// Sale representa una venta confirmada. Es inmutable una vez creada:
// no hay estado pendiente ni endpoints de edición. Posee sus items
// (se eliminan en cascada con la venta).
type Sale struct {
	ID            string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	UserID        string
	UserName      string // lectura: nombre completo del vendedor
	CreatedAt     time.Time
	Items         []SaleItem
}

// SaleItem es una línea de venta. PriceAtSale es la foto del precio al
// momento de vender; no sigue cambios posteriores del producto.
type SaleItem struct {
	ID           string
	SaleID       string
	ProductID    string
	ProductName  string // lectura: nombre al momento de la consulta
	CategoryName string // lectura: categoría del producto
	Quantity     int
	PriceAtSale  decimal.Decimal
}

// Subtotal de la línea: cantidad × precio al momento de la venta.
func (i *SaleItem) Subtotal() decimal.Decimal {
	return i.PriceAtSale.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
