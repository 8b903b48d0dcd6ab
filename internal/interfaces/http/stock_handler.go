package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// stockLedger operaciones mutadoras del motor de stock (implementado por
// ledger.UseCase; interfaz local para poder doblar el motor en tests).
type stockLedger interface {
	RecordSale(ctx context.Context, productID int64, quantity int) (*entity.Sale, error)
	AdjustStock(ctx context.Context, productID int64, delta int) (*entity.Product, error)
	SetStock(ctx context.Context, productID int64, quantity int) (*entity.Product, error)
}

// StockHandler maneja ajuste y escritura de stock, y el historial de movimientos.
type StockHandler struct {
	ledger stockLedger
	sales  *usecase.SaleUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger stockLedger, sales *usecase.SaleUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, sales: sales}
}

// Adjust godoc
// @Summary      Ajustar stock por delta (negativo: merma; positivo: reposición)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Delta"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.ledger.AdjustStock(c.Context(), id, in.Delta)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.FromProduct(product))
}

// Set godoc
// @Summary      Escribir stock absoluto (último escritor gana)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.SetStockRequest  true  "Cantidad"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [patch]
func (h *StockHandler) Set(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.ledger.SetStock(c.Context(), id, in.Quantity)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(dto.FromProduct(product))
}

// Movements godoc
// @Summary      Historial de movimientos de stock de un producto
// @Tags         stock
// @Produce      json
// @Param        id     path   int  true   "ID del producto"
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200    {array}  dto.StockMovementResponse
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	items, err := h.sales.MovementsByProduct(id, c.QueryInt("limit", 50))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(items)
}
