package repository

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// ReportRepository consultas de agregación de solo lectura (sin invariantes).
type ReportRepository interface {
	InventorySummary(lowStockThreshold int) (*entity.InventoryReport, error)
	SalesSummary(from, to time.Time) (*entity.SalesReport, error)
}
