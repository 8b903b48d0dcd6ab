package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryReport resume el estado del inventario (solo lectura).
type InventoryReport struct {
	TotalProducts   int
	TotalValue      decimal.Decimal // suma de precio × stock
	LowStockItems   int
	OutOfStockItems int
}

// TopProduct producto más vendido dentro de un rango de fechas.
type TopProduct struct {
	ProductID int64
	Name      string
	Units     int
	Revenue   decimal.Decimal
}

// SalesReport resume ventas en un rango de fechas (solo lectura).
type SalesReport struct {
	From         time.Time
	To           time.Time
	TotalSales   int
	TotalUnits   int
	TotalRevenue decimal.Decimal
	TopProducts  []TopProduct
}
