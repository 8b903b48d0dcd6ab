package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventorySummary resume el inventario: totales, valor y productos en bajo
// stock (0 < stock <= umbral) o agotados.
func (r *ReportRepo) InventorySummary(lowStockThreshold int) (*entity.InventoryReport, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(price * stock_quantity), 0),
		       COUNT(*) FILTER (WHERE stock_quantity > 0 AND stock_quantity <= $1),
		       COUNT(*) FILTER (WHERE stock_quantity = 0)
		FROM products`
	var rep entity.InventoryReport
	err := r.q.QueryRow(context.Background(), query, lowStockThreshold).Scan(
		&rep.TotalProducts, &rep.TotalValue, &rep.LowStockItems, &rep.OutOfStockItems,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	return &rep, nil
}

// SalesSummary resume ventas en [from, to]: totales, unidades, ingresos y los
// cinco productos más vendidos.
func (r *ReportRepo) SalesSummary(from, to time.Time) (*entity.SalesReport, error) {
	rep := &entity.SalesReport{From: from, To: to}

	totals := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity_sold), 0),
		       COALESCE(SUM(quantity_sold * unit_price), 0)
		FROM sales WHERE sale_date BETWEEN $1 AND $2`
	err := r.q.QueryRow(context.Background(), totals, from, to).Scan(
		&rep.TotalSales, &rep.TotalUnits, &rep.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	top := `
		SELECT p.id, p.name, SUM(s.quantity_sold), SUM(s.quantity_sold * s.unit_price)
		FROM sales s JOIN products p ON s.product_id = p.id
		WHERE s.sale_date BETWEEN $1 AND $2
		GROUP BY p.id, p.name
		ORDER BY SUM(s.quantity_sold) DESC
		LIMIT 5`
	rows, err := r.q.Query(context.Background(), top, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales summary top products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tp entity.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.Units, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		rep.TopProducts = append(rep.TopProducts, tp)
	}
	return rep, rows.Err()
}
