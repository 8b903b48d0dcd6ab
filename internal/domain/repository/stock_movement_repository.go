package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// StockMovementRepository define el puerto para el registro de movimientos de stock.
// Se usa dentro de la misma transacción que la mutación que audita.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID int64, limit int) ([]*entity.StockMovement, error)
}
