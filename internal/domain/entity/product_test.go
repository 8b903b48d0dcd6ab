package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// ─── Product ────────────────────────────────────────────────────────────────

func TestNewProduct_RecortaElNombreYRedondeaElPrecio(t *testing.T) {
	p, err := NewProduct("  Teclado mecánico  ", decimal.RequireFromString("10.999"), 3, nil)

	require.NoError(t, err)
	assert.Equal(t, "Teclado mecánico", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("11.00")), "precio: %s", p.Price)
	assert.Equal(t, 3, p.Stock)
}

func TestNewProduct_NombreVacioEsInvalido(t *testing.T) {
	_, err := NewProduct("   ", decimal.NewFromInt(10), 0, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewProduct_PrecioNoPositivoEsInvalido(t *testing.T) {
	_, err := NewProduct("Teclado", decimal.Zero, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewProduct("Teclado", decimal.RequireFromString("-1.50"), 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewProduct_StockNegativoEsInvalido(t *testing.T) {
	_, err := NewProduct("Teclado", decimal.NewFromInt(10), -1, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewProduct_StockCeroEsValido(t *testing.T) {
	p, err := NewProduct("Teclado", decimal.NewFromInt(10), 0, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

// ─── Sale ───────────────────────────────────────────────────────────────────

func TestNewSale_CalculaElTotal(t *testing.T) {
	s, err := NewSale(1, 3, decimal.RequireFromString("10.50"))

	require.NoError(t, err)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("31.50")), "total: %s", s.Total)
	assert.Equal(t, 3, s.Quantity)
}

func TestNewSale_CantidadNoPositivaEsInvalida(t *testing.T) {
	_, err := NewSale(1, 0, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewSale(1, -2, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewSale_PrecioNoPositivoEsInvalido(t *testing.T) {
	_, err := NewSale(1, 1, decimal.Zero)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
