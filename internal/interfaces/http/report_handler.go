package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
)

// ReportHandler maneja los reportes de solo lectura.
type ReportHandler struct {
	reports *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Inventory godoc
// @Summary      Resumen del inventario
// @Tags         reportes
// @Produce      json
// @Param        low_stock_threshold  query  int  false  "Umbral de bajo stock"  default(5)
// @Success      200  {object}  dto.InventoryReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.reports.Inventory(c.QueryInt("low_stock_threshold", 0))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Resumen de ventas en un rango de fechas
// @Tags         reportes
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (RFC 3339)"
// @Param        to    query  string  false  "Fecha final (RFC 3339)"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, ok := parseDate(c.Query("from"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from debe ser una fecha RFC 3339"})
	}
	to, ok := parseDate(c.Query("to"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to debe ser una fecha RFC 3339"})
	}
	out, err := h.reports.Sales(from, to)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(out)
}

// parseDate acepta RFC 3339 o fecha simple AAAA-MM-DD; vacío devuelve cero.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
