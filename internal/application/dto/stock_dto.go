package dto

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// AdjustStockRequest delta relativo de stock (negativo: merma; positivo: reposición).
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// SetStockRequest escritura absoluta de stock.
type SetStockRequest struct {
	Quantity int `json:"quantity"`
}

// StockMovementResponse salida de un movimiento de stock.
type StockMovementResponse struct {
	ID          int64     `json:"id"`
	OperationID string    `json:"operation_id"`
	ProductID   int64     `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromStockMovement convierte la entidad a su representación de salida.
func FromStockMovement(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:          m.ID,
		OperationID: m.OperationID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
	}
}
