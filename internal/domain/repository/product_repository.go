package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las mutaciones de stock son condicionales: devuelven false si la fila no
// existe o si el resultado violaría stock >= 0, sin aplicar nada.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id int64) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// DecrementStock resta qty solo si el stock actual alcanza (stock >= qty).
	DecrementStock(id int64, qty int) (bool, error)
	// AdjustStock aplica un delta relativo solo si el resultado queda >= 0.
	AdjustStock(id int64, delta int) (bool, error)
	// SetStock escribe la cantidad absoluta (último escritor gana).
	SetStock(id int64, quantity int) (bool, error)
	Delete(id int64) error
}
