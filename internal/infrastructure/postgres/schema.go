package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema crea las tablas si no existen. Idempotente; se ejecuta al
// arrancar. El CHECK de stock no negativo respalda al motor a nivel de columna.
func EnsureSchema(ctx context.Context, q Querier) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS suppliers (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			contact_person VARCHAR(255),
			email VARCHAR(255),
			phone VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price NUMERIC(10,2) NOT NULL CHECK (price > 0),
			stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
			supplier_id BIGINT REFERENCES suppliers(id)
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL REFERENCES products(id),
			quantity_sold INT NOT NULL CHECK (quantity_sold > 0),
			unit_price NUMERIC(10,2) NOT NULL,
			sale_date TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS stock_movements (
			id BIGSERIAL PRIMARY KEY,
			operation_id UUID NOT NULL,
			product_id BIGINT NOT NULL REFERENCES products(id),
			type VARCHAR(20) NOT NULL,
			quantity INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_product_id ON sales(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales(sale_date)`,
		`CREATE INDEX IF NOT EXISTS idx_stock_movements_product_id ON stock_movements(product_id)`,
	}
	for _, stmt := range stmts {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
