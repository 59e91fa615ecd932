package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*entity.Category{}}
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error { f.categories[c.ID] = c; return nil }
func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return f.categories[id], nil
}
func (f *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCategoryRepo) Update(c *entity.Category) error { f.categories[c.ID] = c; return nil }
func (f *fakeCategoryRepo) List() ([]repository.CategoryWithCount, error) {
	out := make([]repository.CategoryWithCount, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, repository.CategoryWithCount{Category: *c})
	}
	return out, nil
}
func (f *fakeCategoryRepo) CountProducts(string) (int, error) { return 0, nil }
func (f *fakeCategoryRepo) Delete(id string) error            { delete(f.categories, id); return nil }

func buildSampleUseCase() (*SampleDataUseCase, *fakeSaleRepo, *fakeProductRepo, *fakeCategoryRepo) {
	productRepo := newFakeProductRepo()
	saleRepo := &fakeSaleRepo{}
	categoryRepo := newFakeCategoryRepo()
	runner := &fakeTxRunner{saleRepo: saleRepo, productRepo: productRepo}
	uc := NewSampleDataUseCase(runner, categoryRepo, productRepo, time.UTC)
	return uc, saleRepo, productRepo, categoryRepo
}

func TestGenerate_SiembraCatalogoUnaSolaVez(t *testing.T) {
	uc, _, productRepo, categoryRepo := buildSampleUseCase()

	require.NoError(t, uc.Generate(context.Background(), sellerID, 5))
	require.NoError(t, uc.Generate(context.Background(), sellerID, 5))

	assert.Len(t, categoryRepo.categories, 3)
	assert.Len(t, productRepo.products, 7)
}

// Si el stock se esfuma a mitad del lote, la línea cae entera: ninguna
// venta persistida puede quedar con el total distinto de la suma de sus
// líneas, ni como cabecera sin líneas.
func TestGenerate_TotalSiempreIgualALaSumaDeSusLineas(t *testing.T) {
	uc, saleRepo, productRepo, _ := buildSampleUseCase()

	// A partir del cuarto descuento otro proceso se lleva el stock del
	// producto justo antes de descontarlo.
	decrements := 0
	failedDecrements := 0
	productRepo.beforeDecrement = func(productID string) {
		decrements++
		if decrements > 3 {
			if p, ok := productRepo.products[productID]; ok && p.Stock > 0 {
				p.Stock = 0
				failedDecrements++
			}
		}
	}

	require.NoError(t, uc.Generate(context.Background(), sellerID, 20))

	require.NotEmpty(t, saleRepo.sales)
	require.Greater(t, failedDecrements, 0)

	itemsBySale := make(map[string][]*entity.SaleItem)
	for _, it := range saleRepo.items {
		itemsBySale[it.SaleID] = append(itemsBySale[it.SaleID], it)
	}
	for _, s := range saleRepo.sales {
		items := itemsBySale[s.ID]
		require.NotEmpty(t, items, "venta %s sin líneas", s.ID)
		sum := decimal.Zero
		for _, it := range items {
			sum = sum.Add(it.PriceAtSale.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		assert.True(t, s.TotalAmount.Equal(sum), "venta %s: total %s, líneas %s", s.ID, s.TotalAmount, sum)
	}
}
