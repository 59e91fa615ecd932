package sales

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SampleDataUseCase puebla el catálogo y dos meses de ventas de ejemplo.
// Solo se expone en development (endpoint) y desde cmd/seed.
type SampleDataUseCase struct {
	txRunner     TxRunner
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	loc          *time.Location
}

// NewSampleDataUseCase construye el generador de datos de ejemplo.
func NewSampleDataUseCase(
	txRunner TxRunner,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	loc *time.Location,
) *SampleDataUseCase {
	return &SampleDataUseCase{
		txRunner:     txRunner,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		loc:          loc,
	}
}

type sampleProduct struct {
	name      string
	sku       string
	category  string
	price     string
	stock     int
	threshold int
}

var sampleCategories = []entity.Category{
	{Name: "Electronics", Description: "Gadgets and devices"},
	{Name: "Accessories", Description: "Peripherals and add-ons"},
	{Name: "Office", Description: "Office supplies"},
}

var sampleProducts = []sampleProduct{
	{"Wireless Mouse", "ELEC-001", "Electronics", "24.99", 120, 15},
	{"Mechanical Keyboard", "ELEC-002", "Electronics", "89.90", 60, 10},
	{"USB-C Hub", "ELEC-003", "Electronics", "45.50", 80, 10},
	{"Laptop Stand", "ACC-001", "Accessories", "32.00", 90, 10},
	{"Webcam Cover", "ACC-002", "Accessories", "4.99", 300, 25},
	{"Notebook A5", "OFF-001", "Office", "3.50", 500, 50},
	{"Gel Pen Pack", "OFF-002", "Office", "6.75", 400, 40},
}

// Generate crea categorías y productos que falten (por SKU) y registra
// ventas aleatorias repartidas entre el mes en curso y el anterior,
// atribuidas al usuario indicado. Es idempotente sobre el catálogo.
func (uc *SampleDataUseCase) Generate(ctx context.Context, userID string, salesCount int) error {
	if salesCount <= 0 {
		salesCount = 30
	}

	categoryIDs := make(map[string]string, len(sampleCategories))
	for _, c := range sampleCategories {
		existing, err := uc.categoryRepo.GetByName(c.Name)
		if err != nil {
			return fmt.Errorf("buscar categoría %s: %w", c.Name, err)
		}
		if existing != nil {
			categoryIDs[c.Name] = existing.ID
			continue
		}
		category := &entity.Category{
			ID:          uuid.New().String(),
			Name:        c.Name,
			Description: c.Description,
			CreatedAt:   time.Now().In(uc.loc),
		}
		if err := uc.categoryRepo.Create(category); err != nil {
			return fmt.Errorf("crear categoría %s: %w", c.Name, err)
		}
		categoryIDs[c.Name] = category.ID
	}

	products := make([]*entity.Product, 0, len(sampleProducts))
	for _, sp := range sampleProducts {
		existing, err := uc.productRepo.GetBySKU(sp.sku)
		if err != nil {
			return fmt.Errorf("buscar producto %s: %w", sp.sku, err)
		}
		if existing != nil {
			products = append(products, existing)
			continue
		}
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			return fmt.Errorf("precio de %s: %w", sp.sku, err)
		}
		now := time.Now().In(uc.loc)
		product := &entity.Product{
			ID:                uuid.New().String(),
			Name:              sp.name,
			SKU:               sp.sku,
			CategoryID:        categoryIDs[sp.category],
			CategoryName:      sp.category,
			Price:             price,
			Stock:             sp.stock,
			LowStockThreshold: sp.threshold,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := uc.productRepo.Create(product); err != nil {
			return fmt.Errorf("crear producto %s: %w", sp.sku, err)
		}
		products = append(products, product)
	}

	methods := []string{entity.PaymentCash, entity.PaymentCard, entity.PaymentMobile}
	now := time.Now().In(uc.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	type line struct {
		product *entity.Product
		qty     int
	}

	for i := 0; i < salesCount; i++ {
		// Mitad de las ventas en el mes anterior para que el trend tenga base.
		var createdAt time.Time
		if i%2 == 0 {
			span := monthStart.Sub(prevMonthStart)
			createdAt = prevMonthStart.Add(time.Duration(rand.Int63n(int64(span))))
		} else {
			span := now.Sub(monthStart)
			if span <= 0 {
				span = time.Hour
			}
			createdAt = monthStart.Add(time.Duration(rand.Int63n(int64(span))))
		}

		lineCount := 1 + rand.Intn(3)
		picked := rand.Perm(len(products))[:lineCount]
		lines := make([]line, 0, lineCount)
		for _, idx := range picked {
			p := products[idx]
			qty := 1 + rand.Intn(4)
			if p.Stock < qty {
				continue
			}
			lines = append(lines, line{product: p, qty: qty})
		}
		if len(lines) == 0 {
			continue
		}

		// El descuento corre primero y el total se calcula solo con las
		// líneas que realmente quedaron: total_amount = Σ subtotales siempre,
		// aunque el stock se agote a mitad del lote.
		var persisted []line
		err := uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
			persisted = persisted[:0]
			total := decimal.Zero
			for _, l := range lines {
				ok, err := productRepo.DecrementStock(l.product.ID, l.qty)
				if err != nil {
					return err
				}
				if !ok {
					// Catálogo de ejemplo agotado: la línea se descarta entera.
					continue
				}
				total = total.Add(l.product.Price.Mul(decimal.NewFromInt(int64(l.qty))))
				persisted = append(persisted, l)
			}
			if len(persisted) == 0 {
				return nil
			}
			sale := &entity.Sale{
				ID:            uuid.New().String(),
				TotalAmount:   total,
				PaymentMethod: methods[rand.Intn(len(methods))],
				UserID:        userID,
				CreatedAt:     createdAt,
			}
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
			for _, l := range persisted {
				item := &entity.SaleItem{
					ID:          uuid.New().String(),
					SaleID:      sale.ID,
					ProductID:   l.product.ID,
					Quantity:    l.qty,
					PriceAtSale: l.product.Price,
				}
				if err := saleRepo.CreateItem(item); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("venta de ejemplo %d: %w", i, err)
		}
		for _, l := range persisted {
			l.product.Stock -= l.qty
		}
	}
	return nil
}
