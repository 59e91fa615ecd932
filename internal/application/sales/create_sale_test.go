package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
	// hook opcional que corre antes de cada decremento (simula otro proceso
	// compitiendo por el stock entre la validación y el commit).
	beforeDecrement func(productID string)
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
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
	copy := *p
	return &copy, nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			copy := *p
			return &copy, nil
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
		copy := *p
		out = append(out, &copy)
	}
	return out, nil
}

func (f *fakeProductRepo) DecrementStock(productID string, qty int) (bool, error) {
	if f.beforeDecrement != nil {
		f.beforeDecrement(productID)
	}
	p, ok := f.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (f *fakeProductRepo) CountSaleReferences(productID string) (int, error) { return 0, nil }

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

type fakeSaleRepo struct {
	sales []*entity.Sale
	items []*entity.SaleItem
	// failItemAt hace fallar CreateItem en la N-ésima llamada (1-based).
	failItemAt int
	itemCalls  int
}

func (f *fakeSaleRepo) Create(s *entity.Sale) error {
	f.sales = append(f.sales, s)
	return nil
}

func (f *fakeSaleRepo) CreateItem(i *entity.SaleItem) error {
	f.itemCalls++
	if f.failItemAt > 0 && f.itemCalls == f.failItemAt {
		return errors.New("write failed")
	}
	f.items = append(f.items, i)
	return nil
}

func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range f.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) List() ([]*entity.Sale, error) { return f.sales, nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error)       { return nil, nil }
func (f *fakeUserRepo) GetByUsername(username string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(u *entity.User) error                         { f.users[u.ID] = u; return nil }

// fakeTxRunner ejecuta fn contra los repos en memoria y simula rollback
// restaurando el estado previo si fn falla.
type fakeTxRunner struct {
	saleRepo    *fakeSaleRepo
	productRepo *fakeProductRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	stockSnapshot := make(map[string]int, len(f.productRepo.products))
	for id, p := range f.productRepo.products {
		stockSnapshot[id] = p.Stock
	}
	salesLen, itemsLen := len(f.saleRepo.sales), len(f.saleRepo.items)

	if err := fn(f.saleRepo, f.productRepo); err != nil {
		for id, stock := range stockSnapshot {
			f.productRepo.products[id].Stock = stock
		}
		f.saleRepo.sales = f.saleRepo.sales[:salesLen]
		f.saleRepo.items = f.saleRepo.items[:itemsLen]
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const sellerID = "00000000-0000-0000-0000-000000000001"

func buildUseCase(products ...*entity.Product) (*SaleUseCase, *fakeSaleRepo, *fakeProductRepo) {
	productRepo := newFakeProductRepo(products...)
	saleRepo := &fakeSaleRepo{}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		sellerID: {ID: sellerID, Username: "smartinez", FirstName: "Sarah", LastName: "Martinez", IsActive: true},
	}}
	runner := &fakeTxRunner{saleRepo: saleRepo, productRepo: productRepo}
	uc := NewSaleUseCase(runner, saleRepo, productRepo, userRepo, time.UTC)
	return uc, saleRepo, productRepo
}

func product(id, name string, price string, stock, threshold int) *entity.Product {
	return &entity.Product{
		ID:                id,
		Name:              name,
		SKU:               "SKU-" + id,
		Price:             decimal.RequireFromString(price),
		Stock:             stock,
		LowStockThreshold: threshold,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYCalculaTotal(t *testing.T) {
	uc, saleRepo, productRepo := buildUseCase(
		product("p1", "Wireless Mouse", "24.99", 10, 5),
		product("p2", "Notebook A5", "3.50", 100, 20),
	)

	out, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
		PaymentMethod: entity.PaymentCard,
	})
	require.NoError(t, err)

	// total = 2*24.99 + 3*3.50 = 60.48
	assert.True(t, decimal.RequireFromString("60.48").Equal(out.TotalAmount), "total %s", out.TotalAmount)
	assert.Equal(t, entity.PaymentCard, out.PaymentMethod)
	assert.Equal(t, "Sarah Martinez", out.UserName)
	assert.Equal(t, 2, out.ItemsCount)

	assert.Equal(t, 8, productRepo.products["p1"].Stock)
	assert.Equal(t, 97, productRepo.products["p2"].Stock)
	assert.Len(t, saleRepo.sales, 1)
	assert.Len(t, saleRepo.items, 2)

	// El precio congelado en la línea es el del momento de la venta.
	assert.True(t, decimal.RequireFromString("24.99").Equal(saleRepo.items[0].PriceAtSale))
}

func TestCreateSale_CarritoVacioRechazado(t *testing.T) {
	uc, _, _ := buildUseCase(product("p1", "Mouse", "10.00", 5, 2))
	_, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_CantidadInvalidaRechazada(t *testing.T) {
	uc, _, _ := buildUseCase(product("p1", "Mouse", "10.00", 5, 2))
	_, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_MetodoPagoInvalidoRechazado(t *testing.T) {
	uc, _, _ := buildUseCase(product("p1", "Mouse", "10.00", 5, 2))
	_, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: "bitcoin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_MetodoPagoPorDefectoEsCash(t *testing.T) {
	uc, _, _ := buildUseCase(product("p1", "Mouse", "10.00", 5, 2))
	out, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCash, out.PaymentMethod)
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	uc, _, _ := buildUseCase(product("p1", "Mouse", "10.00", 5, 2))
	_, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "missing", Quantity: 1}},
	})
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Product", notFound.Resource)
	assert.Equal(t, "missing", notFound.ID)
}

// Escenario completo: stock 5, venta de 3 deja 2 (Low Stock); el segundo
// intento de vender 3 falla reportando las 2 disponibles y el stock no cambia.
func TestCreateSale_SobreventaBloqueada(t *testing.T) {
	uc, _, productRepo := buildUseCase(product("p1", "USB-C Hub", "45.50", 5, 3))

	_, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, productRepo.products["p1"].Stock)
	assert.Equal(t, entity.StatusLowStock, productRepo.products["p1"].Status())

	_, err = uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 3}},
	})
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "USB-C Hub", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 2, productRepo.products["p1"].Stock, "la venta fallida no toca el stock")
}

// Si otro proceso consume el stock entre la validación y la tx, el descuento
// condicional falla y la venta entera se revierte.
func TestCreateSale_CarreraPorElStockRevierteTodo(t *testing.T) {
	uc, saleRepo, productRepo := buildUseCase(
		product("p1", "Mouse", "10.00", 5, 2),
		product("p2", "Keyboard", "50.00", 5, 2),
	)
	raced := false
	productRepo.beforeDecrement = func(productID string) {
		// El competidor se lleva el stock de p2 justo antes del descuento.
		if productID == "p2" && !raced {
			raced = true
			productRepo.products["p2"].Stock = 1
		}
	}

	_, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
	})
	var stockErr *domain.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Keyboard", stockErr.ProductName)

	assert.Empty(t, saleRepo.sales, "no debe quedar cabecera de venta")
	assert.Empty(t, saleRepo.items, "no deben quedar líneas")
	assert.Equal(t, 5, productRepo.products["p1"].Stock, "el descuento de p1 se revierte")
}

// Fallo de escritura en la segunda línea: nada de la venta persiste.
func TestCreateSale_FalloParcialRevierteTodo(t *testing.T) {
	uc, saleRepo, productRepo := buildUseCase(
		product("p1", "Mouse", "10.00", 10, 2),
		product("p2", "Keyboard", "50.00", 10, 2),
	)
	saleRepo.failItemAt = 2

	_, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.Error(t, err)

	assert.Empty(t, saleRepo.sales)
	assert.Empty(t, saleRepo.items)
	assert.Equal(t, 10, productRepo.products["p1"].Stock)
	assert.Equal(t, 10, productRepo.products["p2"].Stock)
}

func TestCreateSale_RespuestaConSubtotales(t *testing.T) {
	p := product("p1", "Gel Pen Pack", "6.75", 50, 10)
	p.CategoryName = "Office"
	uc, _, _ := buildUseCase(p)

	out, err := uc.CreateSale(context.Background(), sellerID, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)

	item := out.Items[0]
	assert.Equal(t, "Gel Pen Pack", item.ProductName)
	assert.Equal(t, "Office", item.Category)
	assert.Equal(t, 4, item.Quantity)
	assert.True(t, decimal.RequireFromString("27.00").Equal(item.Subtotal))
	assert.True(t, out.TotalAmount.Equal(item.Subtotal))
}
