package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// Las ventas son solo-inserción.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta; la BD asigna ID y fecha (sale_date DEFAULT now()).
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (product_id, quantity_sold, unit_price)
		VALUES ($1, $2, $3)
		RETURNING id, sale_date`
	err := r.q.QueryRow(context.Background(), query,
		sale.ProductID, sale.Quantity, sale.UnitPrice,
	).Scan(&sale.ID, &sale.SaleDate)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con el nombre del producto. Devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	query := `
		SELECT s.id, s.product_id, p.name, s.quantity_sold, s.unit_price, s.sale_date
		FROM sales s JOIN products p ON s.product_id = p.id
		WHERE s.id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.SaleDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.Total = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
	return &s, nil
}

// List lista ventas de la más reciente a la más antigua.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT s.id, s.product_id, p.name, s.quantity_sold, s.unit_price, s.sale_date
		FROM sales s JOIN products p ON s.product_id = p.id
		ORDER BY s.sale_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.SaleDate); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.Total = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
		list = append(list, &s)
	}
	return list, rows.Err()
}
