package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/pkg/config"
)

// Conn es el handle de almacenamiento que administra el pool: una conexión
// viva, de propiedad exclusiva del caller entre Acquire y Release.
// *pgx.Conn lo implementa; los tests usan dobles.
type Conn interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Close(ctx context.Context) error
	IsClosed() bool
}

// ConnFactory crea un handle nuevo bajo demanda.
type ConnFactory func(ctx context.Context) (Conn, error)

// NewConnFactory construye la fábrica de conexiones pgx a partir de la
// configuración, registrando el codec NUMERIC -> shopspring/decimal en cada una.
func NewConnFactory(cfg config.DBConfig) ConnFactory {
	return func(ctx context.Context) (Conn, error) {
		conn, err := pgx.Connect(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("conectar a PostgreSQL: %w", err)
		}
		pgxdecimal.Register(conn.TypeMap())
		return conn, nil
	}
}

// ConnPool acota la cantidad de handles ociosos y reutiliza los liberados.
// Acquire nunca bloquea esperando capacidad: si no hay handle ocioso se crea
// uno nuevo (sobreaprovisionamiento puntual a cambio de cero deadlocks).
type ConnPool struct {
	mu      sync.Mutex
	idle    []Conn // pila: se reutiliza el último liberado
	max     int
	factory ConnFactory
	closed  bool
}

// NewConnPool construye el pool con capacidad máxima de ociosos max.
func NewConnPool(max int, factory ConnFactory) *ConnPool {
	if max < 1 {
		max = 1
	}
	return &ConnPool{
		idle:    make([]Conn, 0, max),
		max:     max,
		factory: factory,
	}
}

// Acquire entrega un handle ocioso o crea uno nuevo vía la fábrica.
// Tras Shutdown, o si la fábrica falla, devuelve ErrStorageUnavailable.
func (p *ConnPool) Acquire(ctx context.Context) (Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("%w: pool cerrado", domain.ErrStorageUnavailable)
	}
	if n := len(p.idle); n > 0 {
		conn := p.idle[n-1]
		p.idle = p.idle[:n-1]
		return conn, nil
	}
	conn, err := p.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return conn, nil
}

// Release devuelve el handle al pool. Si el pool está cerrado, el handle está
// roto o ya hay max ociosos, la conexión se cierra y se descarta: un handle
// envenenado nunca vuelve al conjunto ocioso.
func (p *ConnPool) Release(conn Conn) {
	if conn == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || conn.IsClosed() || len(p.idle) >= p.max {
		_ = conn.Close(context.Background())
		return
	}
	p.idle = append(p.idle, conn)
}

// Shutdown cierra todos los handles ociosos y deja el pool inutilizable para
// Acquire. Es idempotente: llamarlo dos veces no produce error.
func (p *ConnPool) Shutdown(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, conn := range p.idle {
		_ = conn.Close(ctx)
	}
	p.idle = nil
	p.closed = true
}

// El pool también es un Querier: cada llamada toma un handle, ejecuta y lo
// devuelve. Así los repositorios de lectura trabajan directo contra el pool
// y las transacciones toman su handle explícito vía TxRunner.
var _ Querier = (*ConnPool)(nil)

// Exec ejecuta una sentencia con un handle del pool y lo libera al terminar.
func (p *ConnPool) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer p.Release(conn)
	return conn.Exec(ctx, sql, arguments...)
}

// Query ejecuta la consulta con un handle del pool; el handle se libera cuando
// el caller cierra las filas.
func (p *ConnPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		p.Release(conn)
		return nil, err
	}
	return &poolRows{Rows: rows, pool: p, conn: conn}, nil
}

// QueryRow ejecuta la consulta con un handle del pool; el handle se libera
// tras el Scan de la fila.
func (p *ConnPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &poolRow{row: conn.QueryRow(ctx, sql, args...), pool: p, conn: conn}
}

// poolRows devuelve el handle al pool al cerrar las filas.
type poolRows struct {
	pgx.Rows
	pool *ConnPool
	conn Conn
	once sync.Once
}

func (r *poolRows) Close() {
	r.Rows.Close()
	r.once.Do(func() { r.pool.Release(r.conn) })
}

// poolRow devuelve el handle al pool tras el Scan.
type poolRow struct {
	row  pgx.Row
	pool *ConnPool
	conn Conn
}

func (r *poolRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.pool.Release(r.conn)
	return err
}

// errRow es un pgx.Row que falla en Scan (Acquire no pudo entregar handle).
type errRow struct{ err error }

func (r errRow) Scan(_ ...any) error { return r.err }
