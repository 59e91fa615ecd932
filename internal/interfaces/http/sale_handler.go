package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/pdf"
)

// SaleHandler maneja las peticiones HTTP para ventas (protegido).
// El generador de sample data solo se registra en development.
type SaleHandler struct {
	uc       *sales.SaleUseCase
	sampleUC *sales.SampleDataUseCase
	receipts *pdf.ReceiptGenerator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, sampleUC *sales.SampleDataUseCase, receipts *pdf.ReceiptGenerator) *SaleHandler {
	return &SaleHandler{uc: uc, sampleUC: sampleUC, receipts: receipts}
}

// List godoc
// @Summary      Listar ventas con items anidados
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar una venta con descuento de stock atómico
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Carrito y método de pago"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Descargar recibo de la venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	sale, err := h.uc.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	bytes, err := h.receipts.GenerateReceipt(sale)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="recibo-%s.pdf"`, shortSaleID(sale.ID)))
	return c.Send(bytes)
}

// GenerateSampleData godoc
// @Summary      Generar catálogo y ventas de muestra (solo development)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        count  query  int  false  "Cantidad de ventas"  default(30)
// @Success      200    {object}  dto.MessageResponse
// @Router       /api/sales/generate-sample-data [post]
func (h *SaleHandler) GenerateSampleData(c *fiber.Ctx) error {
	count := c.QueryInt("count", 0)
	if err := h.sampleUC.Generate(c.UserContext(), GetUserID(c), count); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "datos de muestra generados"})
}

func shortSaleID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
