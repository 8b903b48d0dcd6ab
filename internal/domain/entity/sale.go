package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// Sale representa una venta persistida. Es inmutable: el precio unitario es la
// foto del precio del producto al momento de la venta y no se recalcula nunca.
type Sale struct {
	ID          int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal // Quantity × UnitPrice
	SaleDate    time.Time
}

// NewSale construye una venta pendiente de persistir (sin ID ni fecha, los
// asigna el almacenamiento). Cantidad > 0 y precio unitario positivo.
func NewSale(productID int64, quantity int, unitPrice decimal.Decimal) (*Sale, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !unitPrice.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	unitPrice = unitPrice.Round(2)
	return &Sale{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}
