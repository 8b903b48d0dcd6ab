package entity

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// Product representa un producto de la tienda con su stock disponible.
// Invariante: Stock nunca es negativo; toda mutación pasa por el motor de stock.
type Product struct {
	ID         int64
	Name       string
	Price      decimal.Decimal // precio de venta, siempre a 2 decimales
	Stock      int
	SupplierID *int64
}

// NewProduct valida y construye un producto (nombre recortado no vacío,
// precio positivo redondeado a 2 decimales, stock inicial >= 0).
// Los productos solo existen vía este constructor o vía las operaciones del motor.
func NewProduct(name string, price decimal.Decimal, stock int, supplierID *int64) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	return &Product{
		Name:       name,
		Price:      price.Round(2),
		Stock:      stock,
		SupplierID: supplierID,
	}, nil
}
