// Package analytics contiene los casos de uso read-only del dashboard:
// estadísticas del inventario, tendencia mensual de ventas y el feed de
// actividad reciente.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	recentSalesLimit   = 10 // ventas en el feed
	lowStockAlertLimit = 5  // alertas de stock bajo en el feed
	activityFeedLimit  = 10 // tamaño final del feed combinado
)

// DashboardUseCase agrega métricas para la pantalla principal.
// Fuente de datos: AnalyticsRepository (consultas read-only); no toca
// las tablas directamente ni tiene efectos secundarios.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, loc: loc}
}

// GetStats devuelve los agregados del inventario y la comparación del mes
// calendario en curso contra el anterior (en la zona horaria configurada).
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	counts, err := uc.analyticsRepo.GetProductCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: conteos de productos: %w", err)
	}

	now := time.Now().In(uc.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	nextMonthStart := monthStart.AddDate(0, 1, 0)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	curRevenue, curUnits, err := uc.analyticsRepo.GetSalesMetrics(ctx, monthStart, nextMonthStart)
	if err != nil {
		return nil, fmt.Errorf("stats: métricas del mes: %w", err)
	}
	prevRevenue, prevUnits, err := uc.analyticsRepo.GetSalesMetrics(ctx, prevMonthStart, monthStart)
	if err != nil {
		return nil, fmt.Errorf("stats: métricas del mes anterior: %w", err)
	}

	return &dto.StatsResponse{
		TotalProducts:  counts.Total,
		LowStock:       counts.LowStock,
		OutOfStock:     counts.OutOfStock,
		ActiveProducts: counts.Total - counts.OutOfStock,
		MonthlyRevenue: curRevenue.Round(2),
		RevenueTrend:   TrendPct(prevRevenue, curRevenue),
		MonthlyUnits:   curUnits,
		UnitsTrend:     TrendPct(decimal.NewFromInt(int64(prevUnits)), decimal.NewFromInt(int64(curUnits))),
	}, nil
}

// TrendPct calcula (actual - anterior) / anterior * 100.
// Con anterior 0: 100 si hay valor actual, 0 si ambos son 0.
func TrendPct(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(100)
	}
	hundred := decimal.NewFromInt(100)
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1)
}

// entrada interna del feed; ts es solo clave de orden y no sale en el DTO.
type feedEntry struct {
	ts      time.Time
	kind    string
	message string
}

// GetRecentActivity combina las últimas ventas con alertas de stock bajo.
// Las alertas no tienen historial propio, así que se estampan con "ahora".
// Se ordena por timestamp descendente y se trunca al tamaño del feed.
func (uc *DashboardUseCase) GetRecentActivity(ctx context.Context) ([]dto.ActivityItem, error) {
	now := time.Now().In(uc.loc)

	recent, err := uc.analyticsRepo.GetRecentSales(ctx, recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("activity: ventas recientes: %w", err)
	}
	lowStock, err := uc.analyticsRepo.GetLowStockProducts(ctx, lowStockAlertLimit)
	if err != nil {
		return nil, fmt.Errorf("activity: stock bajo: %w", err)
	}

	entries := make([]feedEntry, 0, len(recent)+len(lowStock))
	for _, s := range recent {
		entries = append(entries, feedEntry{
			ts:      s.CreatedAt,
			kind:    "sale",
			message: fmt.Sprintf("New order #%s from %s.", shortID(s.SaleID), sellerName(s)),
		})
	}
	for _, p := range lowStock {
		entries = append(entries, feedEntry{
			ts:      now,
			kind:    "alert",
			message: fmt.Sprintf("Low stock alert: %q", p.Name),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ts.After(entries[j].ts)
	})
	if len(entries) > activityFeedLimit {
		entries = entries[:activityFeedLimit]
	}

	out := make([]dto.ActivityItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ActivityItem{
			Type:    e.kind,
			Message: e.message,
			Time:    humanizeSince(now, e.ts),
		})
	}
	return out, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func sellerName(s repository.RecentSaleResult) string {
	switch {
	case s.UserFirstName != "" && s.UserLastName != "":
		return fmt.Sprintf("%s %s", s.UserFirstName, string([]rune(s.UserLastName)[0]))
	case s.UserFirstName != "":
		return s.UserFirstName
	case s.Username != "":
		return s.Username
	default:
		return "Unknown"
	}
}

func humanizeSince(now, ts time.Time) string {
	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
