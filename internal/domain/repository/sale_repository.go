package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale.
// Las ventas son solo-inserción: no hay update ni delete.
type SaleRepository interface {
	// Create persiste la venta y completa ID y SaleDate asignados por la BD.
	Create(sale *entity.Sale) error
	GetByID(id int64) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
