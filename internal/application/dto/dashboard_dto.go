package dto

import "github.com/shopspring/decimal"

// StatsResponse agregados del inventario y tendencia mensual de ventas.
// Los trends comparan el mes calendario en curso contra el anterior.
type StatsResponse struct {
	TotalProducts  int             `json:"total_products"`
	LowStock       int             `json:"low_stock"`
	OutOfStock     int             `json:"out_of_stock"`
	ActiveProducts int             `json:"active_products"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	RevenueTrend   decimal.Decimal `json:"revenue_trend"`
	MonthlyUnits   int             `json:"monthly_units"`
	UnitsTrend     decimal.Decimal `json:"units_trend"`
}

// ActivityItem entrada del feed de actividad reciente.
type ActivityItem struct {
	Type    string `json:"type"` // sale | alert
	Message string `json:"message"`
	Time    string `json:"time"` // humanizado: "just now", "5 min ago"...
}
