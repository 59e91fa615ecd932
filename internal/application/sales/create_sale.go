package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SaleUseCase registra ventas y las consulta. La escritura pasa siempre por
// el TxRunner; los repositorios directos son para lecturas fuera de tx.
type SaleUseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	loc         *time.Location
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	loc *time.Location,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		loc:         loc,
	}
}

// línea validada con la foto del producto al momento de la validación.
type validatedLine struct {
	product  *entity.Product
	quantity int
}

// CreateSale valida el carrito, calcula el total y persiste la venta con el
// descuento de stock en una sola transacción.
//
// La validación previa lee el stock para dar errores amigables por línea,
// pero la garantía real contra sobreventa es el UPDATE condicional dentro
// de la tx: si otro proceso consumió el stock entre la validación y el
// commit, el descuento afecta cero filas y toda la venta se revierte.
func (uc *SaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentCash
	}
	if !entity.ValidPaymentMethod(method) {
		return nil, domain.ErrInvalidInput
	}

	total := decimal.Zero
	lines := make([]validatedLine, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &domain.NotFoundError{Resource: "Product", ID: item.ProductID}
		}
		if product.Stock < item.Quantity {
			return nil, &domain.StockError{ProductName: product.Name, Available: product.Stock}
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		lines = append(lines, validatedLine{product: product, quantity: item.Quantity})
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.NotFoundError{Resource: "User", ID: userID}
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		TotalAmount:   total,
		PaymentMethod: method,
		UserID:        user.ID,
		UserName:      user.FullName(),
		CreatedAt:     time.Now().In(uc.loc),
	}

	err = uc.txRunner.Run(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, line := range lines {
			ok, err := productRepo.DecrementStock(line.product.ID, line.quantity)
			if err != nil {
				return err
			}
			if !ok {
				// Otro proceso ganó la carrera por el stock: abortar todo.
				current, err := productRepo.GetByID(line.product.ID)
				available := 0
				if err == nil && current != nil {
					available = current.Stock
				}
				return &domain.StockError{ProductName: line.product.Name, Available: available}
			}
			item := &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   line.product.ID,
				Quantity:    line.quantity,
				PriceAtSale: line.product.Price, // foto de validación, no se relee
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Respuesta con los nombres capturados en la validación.
	items := make([]dto.SaleItemResponse, 0, len(lines))
	for _, line := range lines {
		category := line.product.CategoryName
		if category == "" {
			category = "Uncategorized"
		}
		qty := decimal.NewFromInt(int64(line.quantity))
		items = append(items, dto.SaleItemResponse{
			ProductName: line.product.Name,
			Category:    category,
			Quantity:    line.quantity,
			Price:       line.product.Price,
			Subtotal:    line.product.Price.Mul(qty),
		})
	}
	return &dto.SaleResponse{
		ID:            sale.ID,
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: sale.PaymentMethod,
		UserName:      sale.UserName,
		ItemsCount:    len(items),
		CreatedAt:     sale.CreatedAt,
		Items:         items,
	}, nil
}
