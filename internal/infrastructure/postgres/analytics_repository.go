package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetProductCounts devuelve total, stock bajo y agotados en una sola consulta.
// low_stock usa stock <= umbral, incluyendo 0 (misma semántica que la vista
// del dashboard de siempre).
func (r *AnalyticsRepo) GetProductCounts(ctx context.Context) (repository.ProductCounts, error) {
	const query = `
	SELECT
	    COUNT(*)                                                  AS total,
	    COUNT(*) FILTER (WHERE stock <= low_stock_threshold)      AS low_stock,
	    COUNT(*) FILTER (WHERE stock = 0)                         AS out_of_stock
	FROM products`

	var counts repository.ProductCounts
	err := r.pool.QueryRow(ctx, query).Scan(&counts.Total, &counts.LowStock, &counts.OutOfStock)
	if err != nil {
		return repository.ProductCounts{}, fmt.Errorf("analytics.GetProductCounts: %w", err)
	}
	return counts, nil
}

// GetSalesMetrics suma total_amount y unidades vendidas en [start, end).
// Usa COALESCE para devolver cero si el período no tiene ventas.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (decimal.Decimal, int, error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total_amount), 0)                          AS revenue,
	    COALESCE((
	        SELECT SUM(i.quantity)
	        FROM sale_items i
	        JOIN sales s2 ON s2.id = i.sale_id
	        WHERE s2.created_at >= $1 AND s2.created_at < $2
	    ), 0)                                                     AS units
	FROM sales s
	WHERE s.created_at >= $1 AND s.created_at < $2`

	var revenue decimal.Decimal
	var units int
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&revenue, &units); err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return revenue, units, nil
}

// GetRecentSales devuelve las últimas ventas con los datos del vendedor.
func (r *AnalyticsRepo) GetRecentSales(ctx context.Context, limit int) ([]repository.RecentSaleResult, error) {
	const query = `
	SELECT s.id, COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
	       COALESCE(u.username, ''), s.created_at
	FROM sales s
	LEFT JOIN users u ON u.id = s.user_id
	ORDER BY s.created_at DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetRecentSales: %w", err)
	}
	defer rows.Close()

	var results []repository.RecentSaleResult
	for rows.Next() {
		var row repository.RecentSaleResult
		if err := rows.Scan(&row.SaleID, &row.UserFirstName, &row.UserLastName, &row.Username, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("analytics.GetRecentSales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetLowStockProducts devuelve los productos en la banda 0 < stock <= umbral,
// los más cercanos a agotarse primero.
func (r *AnalyticsRepo) GetLowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	query := productSelect + `
	WHERE p.stock > 0 AND p.stock <= p.low_stock_threshold
	ORDER BY p.stock ASC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetLowStockProducts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SKU, &p.CategoryID, &p.CategoryName,
			&p.Price, &p.Stock, &p.LowStockThreshold, &p.Description,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetLowStockProducts scan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
