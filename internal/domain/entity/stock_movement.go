package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeSale       = "SALE"       // venta (cantidad negativa)
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste relativo (merma, reposición)
	MovementTypeSet        = "SET"        // escritura absoluta (cantidad resultante)
)

// StockMovement es el registro de auditoría de cada mutación de stock.
// Se escribe en la misma transacción que la mutación; OperationID agrupa
// las filas generadas por una misma operación del motor.
type StockMovement struct {
	ID          int64
	OperationID string
	ProductID   int64
	Type        string
	Quantity    int
	CreatedAt   time.Time
}
