package sales

import (
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

// List devuelve todas las ventas, la más reciente primero, con items anidados.
func (uc *SaleUseCase) List() ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// Get devuelve una venta por ID con sus items.
func (uc *SaleUseCase) Get(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Resource: "Sale", ID: id}
	}
	out := toSaleResponse(sale)
	return &out, nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		name := item.ProductName
		if name == "" {
			name = "Unknown Product"
		}
		category := item.CategoryName
		if category == "" {
			category = "Uncategorized"
		}
		items = append(items, dto.SaleItemResponse{
			ID:          item.ID,
			ProductName: name,
			Category:    category,
			Quantity:    item.Quantity,
			Price:       item.PriceAtSale,
			Subtotal:    item.Subtotal(),
		})
	}
	userName := s.UserName
	if userName == "" {
		userName = "Unknown"
	}
	return dto.SaleResponse{
		ID:            s.ID,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		UserName:      userName,
		ItemsCount:    len(items),
		CreatedAt:     s.CreatedAt,
		Items:         items,
	}
}
