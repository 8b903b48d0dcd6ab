package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/ledger"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: un store con snapshot/restore emula el Commit/Rollback
// de la transacción real, y permite inyectar fallos en pasos intermedios para
// verificar la atomicidad del motor.
// ──────────────────────────────────────────────────────────────────────────────

var errSimulado = errors.New("fallo simulado de almacenamiento")

type memStore struct {
	products  map[int64]*entity.Product
	sales     []*entity.Sale
	movements []*entity.StockMovement
	nextSale  int64

	failDecrement bool // DecrementStock falla tras el insert de la venta
	failMovement  bool // el registro del movimiento falla al final
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: map[int64]*entity.Product{}, nextSale: 1}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *memStore) snapshot() memStore {
	cp := memStore{
		products:      make(map[int64]*entity.Product, len(s.products)),
		sales:         append([]*entity.Sale(nil), s.sales...),
		movements:     append([]*entity.StockMovement(nil), s.movements...),
		nextSale:      s.nextSale,
		failDecrement: s.failDecrement,
		failMovement:  s.failMovement,
	}
	for id, p := range s.products {
		pc := *p
		cp.products[id] = &pc
	}
	return cp
}

func (s *memStore) stock(id int64) int { return s.products[id].Stock }

// memTxRunner ejecuta fn sobre el store y revierte al snapshot si fn falla.
type memTxRunner struct {
	store *memStore
	runs  int
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	r.runs++
	before := r.store.snapshot()
	err := fn(memProducts{r.store}, memSales{r.store}, memMovements{r.store})
	if err != nil {
		*r.store = before // rollback
		return err
	}
	return nil
}

type memProducts struct{ s *memStore }

func (m memProducts) Create(p *entity.Product) error { m.s.products[p.ID] = p; return nil }

func (m memProducts) GetByID(id int64) (*entity.Product, error) { return m.GetForUpdate(id) }

func (m memProducts) GetForUpdate(id int64) (*entity.Product, error) {
	p, ok := m.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m memProducts) List(_, _ int) ([]*entity.Product, error) { return nil, nil }

func (m memProducts) Update(_ *entity.Product) error { return nil }

func (m memProducts) DecrementStock(id int64, qty int) (bool, error) {
	if m.s.failDecrement {
		return false, errSimulado
	}
	p, ok := m.s.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (m memProducts) AdjustStock(id int64, delta int) (bool, error) {
	p, ok := m.s.products[id]
	if !ok || p.Stock+delta < 0 {
		return false, nil
	}
	p.Stock += delta
	return true, nil
}

func (m memProducts) SetStock(id int64, quantity int) (bool, error) {
	p, ok := m.s.products[id]
	if !ok {
		return false, nil
	}
	p.Stock = quantity
	return true, nil
}

func (m memProducts) Delete(id int64) error { delete(m.s.products, id); return nil }

type memSales struct{ s *memStore }

func (m memSales) Create(sale *entity.Sale) error {
	sale.ID = m.s.nextSale
	m.s.nextSale++
	m.s.sales = append(m.s.sales, sale)
	return nil
}

func (m memSales) GetByID(_ int64) (*entity.Sale, error) { return nil, nil }

func (m memSales) List(_, _ int) ([]*entity.Sale, error) { return m.s.sales, nil }

type memMovements struct{ s *memStore }

func (m memMovements) Create(mov *entity.StockMovement) error {
	if m.s.failMovement {
		return errSimulado
	}
	mov.ID = int64(len(m.s.movements) + 1)
	m.s.movements = append(m.s.movements, mov)
	return nil
}

func (m memMovements) ListByProduct(_ int64, _ int) ([]*entity.StockMovement, error) {
	return m.s.movements, nil
}

func producto(id int64, precio string, stock int) *entity.Product {
	return &entity.Product{ID: id, Name: "Café 500g", Price: decimal.RequireFromString(precio), Stock: stock}
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DescuentaStockYCapturaPrecio(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 5))
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	sale, err := uc.RecordSale(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(1), sale.ID, "la venta debe volver con su ID asignado")
	assert.Equal(t, 5, sale.Quantity)
	assert.True(t, sale.UnitPrice.Equal(decimal.RequireFromString("10.00")),
		"el precio unitario debe ser la foto del precio del producto")
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("50.00")),
		"total = cantidad × precio unitario")
	assert.Equal(t, 0, store.stock(1), "el stock debe quedar en 0")

	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeSale, store.movements[0].Type)
	assert.Equal(t, -5, store.movements[0].Quantity, "la venta registra cantidad negativa")
	assert.NotEmpty(t, store.movements[0].OperationID)
}

func TestRecordSale_StockInsuficiente(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 5))
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	_, err := uc.RecordSale(context.Background(), 1, 5)
	require.NoError(t, err)

	// El stock quedó en 0: la siguiente venta debe fallar y no mutar nada.
	_, err = uc.RecordSale(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, store.stock(1), "el stock debe seguir en 0")
	assert.Len(t, store.sales, 1, "no debe existir una segunda venta")
	assert.Len(t, store.movements, 1)
}

func TestRecordSale_CantidadInvalida(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 5))
	runner := &memTxRunner{store: store}
	uc := ledger.NewUseCase(runner)

	for _, qty := range []int{0, -3} {
		_, err := uc.RecordSale(context.Background(), 1, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Zero(t, runner.runs, "la validación debe rechazar antes de abrir transacción")
}

func TestRecordSale_ProductoInexistente(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 5))
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	_, err := uc.RecordSale(context.Background(), 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
	assert.Equal(t, 5, store.stock(1))
}

// Atomicidad: si el descuento de stock falla después de insertar la venta,
// la venta tampoco debe quedar visible tras el rollback.
func TestRecordSale_RollbackTrasFalloEnDescuento(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 5))
	store.failDecrement = true
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	_, err := uc.RecordSale(context.Background(), 1, 2)
	require.ErrorIs(t, err, errSimulado)

	assert.Empty(t, store.sales, "la venta insertada debe revertirse con el rollback")
	assert.Empty(t, store.movements)
	assert.Equal(t, 5, store.stock(1), "el stock no debe cambiar")
}

func TestRecordSale_RollbackTrasFalloEnMovimiento(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 5))
	store.failMovement = true
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	_, err := uc.RecordSale(context.Background(), 1, 2)
	require.ErrorIs(t, err, errSimulado)

	assert.Empty(t, store.sales)
	assert.Equal(t, 5, store.stock(1), "el descuento ya aplicado debe revertirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_DeltaPositivoYNegativo(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 2))
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	p, err := uc.AdjustStock(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)

	p, err = uc.AdjustStock(context.Background(), 1, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock, "un delta que deja exactamente 0 es válido")

	require.Len(t, store.movements, 2)
	assert.Equal(t, entity.MovementTypeAdjustment, store.movements[0].Type)
	assert.Equal(t, 8, store.movements[0].Quantity)
	assert.Equal(t, -10, store.movements[1].Quantity)
}

func TestAdjustStock_ResultadoNegativo(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 2))
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	_, err := uc.AdjustStock(context.Background(), 1, -3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, store.stock(1), "el stock debe seguir en 2")
	assert.Empty(t, store.movements)
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	_, err := uc.AdjustStock(context.Background(), 42, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetStock
// ──────────────────────────────────────────────────────────────────────────────

func TestSetStock_EscrituraAbsoluta(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 7))
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	p, err := uc.SetStock(context.Background(), 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, p.Stock)
	assert.Equal(t, 30, store.stock(1))

	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeSet, store.movements[0].Type)
	assert.Equal(t, 30, store.movements[0].Quantity, "SET registra la cantidad resultante")
}

func TestSetStock_CantidadNegativa(t *testing.T) {
	store := newMemStore(producto(1, "10.00", 7))
	runner := &memTxRunner{store: store}
	uc := ledger.NewUseCase(runner)

	_, err := uc.SetStock(context.Background(), 1, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, runner.runs, "la cantidad negativa se rechaza antes de emitir sentencias")
	assert.Equal(t, 7, store.stock(1))
}

func TestSetStock_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewUseCase(&memTxRunner{store: store})

	_, err := uc.SetStock(context.Background(), 42, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
