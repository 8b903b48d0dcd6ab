package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test: un Conn falso y una fábrica que cuenta cuántos crea.
// ──────────────────────────────────────────────────────────────────────────────

type fakeConn struct {
	mu     sync.Mutex
	closed bool
}

func (c *fakeConn) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (c *fakeConn) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, nil
}

func (c *fakeConn) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row { return nil }

func (c *fakeConn) Begin(_ context.Context) (pgx.Tx, error) { return nil, nil }

func (c *fakeConn) Close(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type countingFactory struct {
	mu      sync.Mutex
	created []*fakeConn
	err     error
}

func (f *countingFactory) factory(_ context.Context) (postgres.Conn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	conn := &fakeConn{}
	f.created = append(f.created, conn)
	return conn, nil
}

func (f *countingFactory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// ──────────────────────────────────────────────────────────────────────────────
// Acquire / Release
// ──────────────────────────────────────────────────────────────────────────────

func TestPool_AcquireReutilizaElUltimoLiberado(t *testing.T) {
	f := &countingFactory{}
	pool := postgres.NewConnPool(2, f.factory)
	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.count())

	pool.Release(conn)

	again, err := pool.Acquire(ctx)
	require.NoError(t, err)
	assert.Same(t, conn, again, "debe reutilizarse el handle liberado, no crear otro")
	assert.Equal(t, 1, f.count())
}

func TestPool_SinOciososCreaEnVezDeBloquear(t *testing.T) {
	f := &countingFactory{}
	pool := postgres.NewConnPool(2, f.factory)
	ctx := context.Background()

	// Tres adquisiciones vivas con capacidad 2: la tercera crea un handle
	// nuevo en lugar de esperar.
	c1, err := pool.Acquire(ctx)
	require.NoError(t, err)
	c2, err := pool.Acquire(ctx)
	require.NoError(t, err)
	c3, err := pool.Acquire(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, f.count())
	assert.NotSame(t, c1, c2)
	assert.NotSame(t, c2, c3)
}

func TestPool_ReleaseSobreCapacidadCierraElHandle(t *testing.T) {
	f := &countingFactory{}
	pool := postgres.NewConnPool(2, f.factory)
	ctx := context.Background()

	c1, _ := pool.Acquire(ctx)
	c2, _ := pool.Acquire(ctx)
	c3, _ := pool.Acquire(ctx)

	pool.Release(c1)
	pool.Release(c2)
	pool.Release(c3) // excede la capacidad: se cierra

	assert.True(t, c3.(*fakeConn).IsClosed(), "el handle sobrante debe cerrarse")
	assert.False(t, c1.(*fakeConn).IsClosed())
	assert.False(t, c2.(*fakeConn).IsClosed())
}

func TestPool_HandleRotoNoVuelveAlPool(t *testing.T) {
	f := &countingFactory{}
	pool := postgres.NewConnPool(2, f.factory)
	ctx := context.Background()

	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)

	// El handle se rompe mientras está en uso; devolverlo no debe encolarlo.
	require.NoError(t, conn.Close(ctx))
	pool.Release(conn)

	again, err := pool.Acquire(ctx)
	require.NoError(t, err)
	assert.NotSame(t, conn, again, "un handle envenenado nunca debe reutilizarse")
	assert.Equal(t, 2, f.count())
}

func TestPool_FabricaFallaDevuelveErrorDeRecurso(t *testing.T) {
	f := &countingFactory{err: errors.New("conexión rechazada")}
	pool := postgres.NewConnPool(2, f.factory)

	_, err := pool.Acquire(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Shutdown
// ──────────────────────────────────────────────────────────────────────────────

func TestPool_ShutdownCierraOciososYEsIdempotente(t *testing.T) {
	f := &countingFactory{}
	pool := postgres.NewConnPool(2, f.factory)
	ctx := context.Background()

	c1, _ := pool.Acquire(ctx)
	c2, _ := pool.Acquire(ctx)
	pool.Release(c1)
	pool.Release(c2)

	pool.Shutdown(ctx)
	pool.Shutdown(ctx) // segunda llamada: sin error, mismo estado

	assert.True(t, c1.(*fakeConn).IsClosed())
	assert.True(t, c2.(*fakeConn).IsClosed())

	_, err := pool.Acquire(ctx)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable,
		"Acquire tras Shutdown debe fallar con error de recurso")
}

func TestPool_ReleaseTrasShutdownCierraElHandle(t *testing.T) {
	f := &countingFactory{}
	pool := postgres.NewConnPool(2, f.factory)
	ctx := context.Background()

	conn, _ := pool.Acquire(ctx)
	pool.Shutdown(ctx)
	pool.Release(conn)

	assert.True(t, conn.(*fakeConn).IsClosed())
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Con G goroutines que nunca retienen más de un handle a la vez, el total de
// handles creados no puede exceder el pico de adquisiciones concurrentes (G).
func TestPool_ConcurrenciaNoDuplicaNiPierdeHandles(t *testing.T) {
	const goroutines = 8
	const iterations = 200

	f := &countingFactory{}
	pool := postgres.NewConnPool(4, f.factory)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				conn, err := pool.Acquire(ctx)
				if !assert.NoError(t, err) {
					return
				}
				pool.Release(conn)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, f.count(), goroutines,
		"no deben crearse más handles que el pico de adquisiciones concurrentes")
}
