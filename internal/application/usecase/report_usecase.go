package usecase

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Umbral por defecto para considerar un producto en bajo stock.
const defaultLowStockThreshold = 5

// ReportUseCase reportes de solo lectura (sin invariantes que proteger).
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Inventory genera el resumen del inventario.
func (uc *ReportUseCase) Inventory(lowStockThreshold int) (*dto.InventoryReportResponse, error) {
	if lowStockThreshold <= 0 {
		lowStockThreshold = defaultLowStockThreshold
	}
	rep, err := uc.repo.InventorySummary(lowStockThreshold)
	if err != nil {
		return nil, err
	}
	out := dto.FromInventoryReport(rep)
	return &out, nil
}

// Sales genera el resumen de ventas en [from, to]. Rango vacío: últimos 30 días.
func (uc *ReportUseCase) Sales(from, to time.Time) (*dto.SalesReportResponse, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	rep, err := uc.repo.SalesSummary(from, to)
	if err != nil {
		return nil, err
	}
	out := dto.FromSalesReport(rep)
	return &out, nil
}
