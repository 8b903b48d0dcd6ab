package usecase

import (
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// SaleUseCase consultas de ventas. El registro de ventas vive en el motor de
// stock (ledger); aquí solo hay lecturas sin invariantes.
type SaleUseCase struct {
	saleRepo     repository.SaleRepository
	movementRepo repository.StockMovementRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(saleRepo repository.SaleRepository, movementRepo repository.StockMovementRepository) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo, movementRepo: movementRepo}
}

// GetByID obtiene una venta por ID. Devuelve nil, nil si no existe.
func (uc *SaleUseCase) GetByID(id int64) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	out := dto.FromSale(sale)
	return &out, nil
}

// List lista ventas de la más reciente a la más antigua.
func (uc *SaleUseCase) List(page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, dto.FromSale(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// MovementsByProduct lista los últimos movimientos de stock de un producto.
func (uc *SaleUseCase) MovementsByProduct(productID int64, limit int) ([]dto.StockMovementResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	movements, err := uc.movementRepo.ListByProduct(productID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.FromStockMovement(m))
	}
	return items, nil
}
