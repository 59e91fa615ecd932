package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// fakeProductRepo repositorio de productos en memoria.
type fakeProductRepo struct {
	products map[string]*entity.Product
	saleRefs map[string]int // líneas de venta históricas por producto
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[string]*entity.Product),
		saleRefs: make(map[string]int),
	}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) DecrementStock(productID string, qty int) (bool, error) {
	p, ok := f.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (f *fakeProductRepo) CountSaleReferences(productID string) (int, error) {
	return f.saleRefs[productID], nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

func buildProductUseCase() (*ProductUseCase, *fakeProductRepo, *fakeCategoryRepo) {
	productRepo := newFakeProductRepo()
	categoryRepo := newFakeCategoryRepo()
	return NewProductUseCase(productRepo, categoryRepo), productRepo, categoryRepo
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, _, _ := buildProductUseCase()

	_, err := uc.Create(dto.CreateProductRequest{Name: "Mouse", SKU: "ELEC-001", Price: decimal.RequireFromString("24.99")})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Otro Mouse", SKU: "ELEC-001", Price: decimal.RequireFromString("19.99")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	uc, _, _ := buildProductUseCase()

	_, err := uc.Create(dto.CreateProductRequest{
		Name: "Mouse", SKU: "ELEC-001",
		Price:      decimal.RequireFromString("24.99"),
		CategoryID: "missing",
	})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Category", notFound.Resource)
}

func TestProductCreate_UmbralPorDefecto(t *testing.T) {
	uc, repo, _ := buildProductUseCase()

	out, err := uc.Create(dto.CreateProductRequest{Name: "Mouse", SKU: "ELEC-001", Price: decimal.RequireFromString("24.99"), Stock: 100})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultLowStockThreshold, repo.products[out.ID].LowStockThreshold)
	assert.Equal(t, entity.StatusInStock, out.Status)
	assert.Equal(t, "Uncategorized", out.Category, "sin categoría asignada")
}

func TestProductCreate_DatosInvalidos(t *testing.T) {
	uc, _, _ := buildProductUseCase()

	_, err := uc.Create(dto.CreateProductRequest{Name: "", SKU: "X-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{Name: "X", SKU: "X-1", Price: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{Name: "X", SKU: "X-1", Stock: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_Parche(t *testing.T) {
	uc, _, categoryRepo := buildProductUseCase()

	category := &entity.Category{ID: "cat-1", Name: "Electronics"}
	require.NoError(t, categoryRepo.Create(category))

	created, err := uc.Create(dto.CreateProductRequest{Name: "Mouse", SKU: "ELEC-001", Price: decimal.RequireFromString("24.99"), Stock: 10})
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("29.99")
	categoryID := "cat-1"
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Price: &newPrice, CategoryID: &categoryID})
	require.NoError(t, err)

	assert.True(t, newPrice.Equal(out.Price))
	assert.Equal(t, "Electronics", out.Category)
	assert.Equal(t, "Mouse", out.Name, "los campos ausentes del parche no cambian")
	assert.Equal(t, 10, out.Stock)
}

func TestProductUpdate_QuitarCategoria(t *testing.T) {
	uc, _, categoryRepo := buildProductUseCase()
	require.NoError(t, categoryRepo.Create(&entity.Category{ID: "cat-1", Name: "Electronics"}))

	created, err := uc.Create(dto.CreateProductRequest{
		Name: "Mouse", SKU: "ELEC-001",
		Price: decimal.RequireFromString("24.99"), CategoryID: "cat-1",
	})
	require.NoError(t, err)

	empty := ""
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{CategoryID: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Uncategorized", out.Category)
	assert.Empty(t, out.CategoryID)
}

func TestProductDelete_ConVentasHistoricasRechazado(t *testing.T) {
	uc, repo, _ := buildProductUseCase()

	created, err := uc.Create(dto.CreateProductRequest{Name: "Mouse", SKU: "ELEC-001", Price: decimal.RequireFromString("24.99")})
	require.NoError(t, err)
	repo.saleRefs[created.ID] = 2

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, repo.products, created.ID, "el producto sigue existiendo")
}

func TestProductDelete_SinReferencias(t *testing.T) {
	uc, repo, _ := buildProductUseCase()

	created, err := uc.Create(dto.CreateProductRequest{Name: "Mouse", SKU: "ELEC-001", Price: decimal.RequireFromString("24.99")})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.NotContains(t, repo.products, created.ID)
}
