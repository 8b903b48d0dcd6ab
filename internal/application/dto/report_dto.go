package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// InventoryReportResponse resumen del inventario.
type InventoryReportResponse struct {
	TotalProducts   int             `json:"total_products"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStockItems int             `json:"out_of_stock_items"`
}

// TopProductResponse producto más vendido en el rango.
type TopProductResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SalesReportResponse resumen de ventas en un rango de fechas.
type SalesReportResponse struct {
	From         time.Time            `json:"from"`
	To           time.Time            `json:"to"`
	TotalSales   int                  `json:"total_sales"`
	TotalUnits   int                  `json:"total_units"`
	TotalRevenue decimal.Decimal      `json:"total_revenue"`
	TopProducts  []TopProductResponse `json:"top_products"`
}

// FromInventoryReport convierte la entidad a su representación de salida.
func FromInventoryReport(r *entity.InventoryReport) InventoryReportResponse {
	return InventoryReportResponse{
		TotalProducts:   r.TotalProducts,
		TotalValue:      r.TotalValue,
		LowStockItems:   r.LowStockItems,
		OutOfStockItems: r.OutOfStockItems,
	}
}

// FromSalesReport convierte la entidad a su representación de salida.
func FromSalesReport(r *entity.SalesReport) SalesReportResponse {
	out := SalesReportResponse{
		From:         r.From,
		To:           r.To,
		TotalSales:   r.TotalSales,
		TotalUnits:   r.TotalUnits,
		TotalRevenue: r.TotalRevenue,
		TopProducts:  make([]TopProductResponse, 0, len(r.TopProducts)),
	}
	for _, tp := range r.TopProducts {
		out.TopProducts = append(out.TopProducts, TopProductResponse{
			ProductID: tp.ProductID,
			Name:      tp.Name,
			Units:     tp.Units,
			Revenue:   tp.Revenue,
		})
	}
	return out
}
