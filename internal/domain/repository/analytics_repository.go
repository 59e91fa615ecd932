package repository

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductCounts agregados del inventario para el dashboard.
// LowStock cuenta stock <= umbral (incluye 0, igual que la consulta original).
type ProductCounts struct {
	Total      int
	LowStock   int
	OutOfStock int
}

// RecentSaleResult venta reciente con los datos del vendedor para el feed.
type RecentSaleResult struct {
	SaleID        string
	UserFirstName string
	UserLastName  string
	Username      string
	CreatedAt     time.Time
}

// AnalyticsRepository consultas read-only para estadísticas y actividad.
type AnalyticsRepository interface {
	GetProductCounts(ctx context.Context) (ProductCounts, error)
	// GetSalesMetrics suma total_amount y unidades vendidas en el rango.
	GetSalesMetrics(ctx context.Context, start, end time.Time) (revenue decimal.Decimal, units int, err error)
	GetRecentSales(ctx context.Context, limit int) ([]RecentSaleResult, error)
	// GetLowStockProducts devuelve productos con 0 < stock <= umbral,
	// ordenados por stock ascendente.
	GetLowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error)
}
