package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ─── Doble en memoria del repositorio de productos ──────────────────────────

type fakeProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*entity.Product), nextID: 1}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) DecrementStock(id int64, qty int) (bool, error) {
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *fakeProductRepo) AdjustStock(id int64, delta int) (bool, error) {
	p, ok := r.products[id]
	if !ok || p.Stock+delta < 0 {
		return false, nil
	}
	p.Stock += delta
	return true, nil
}

func (r *fakeProductRepo) SetStock(id int64, quantity int) (bool, error) {
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Stock = quantity
	return true, nil
}

func (r *fakeProductRepo) Delete(id int64) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestProductUseCase_CreateValidaConElConstructor(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	out, err := uc.Create(dto.CreateProductRequest{
		Name:  "  Mouse óptico ",
		Price: decimal.RequireFromString("25.999"),
		Stock: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, "Mouse óptico", out.Name)
	assert.True(t, out.Price.Equal(decimal.RequireFromString("26.00")))
	assert.NotZero(t, out.ID)
}

func TestProductUseCase_CreateRechazaEntradaInvalida(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(dto.CreateProductRequest{Name: "", Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Mouse", Price: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_GetByIDInexistenteDevuelveNil(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	out, err := uc.GetByID(999)

	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProductUseCase_UpdateNoTocaElStock(t *testing.T) {
	repo := newFakeProductRepo()
	uc := NewProductUseCase(repo)
	created, err := uc.Create(dto.CreateProductRequest{
		Name: "Mouse", Price: decimal.NewFromInt(10), Stock: 7,
	})
	require.NoError(t, err)

	newName := "Mouse inalámbrico"
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Mouse inalámbrico", out.Name)
	assert.Equal(t, 7, out.Stock)
}

func TestProductUseCase_UpdateInexistenteDevuelveNotFound(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())

	newName := "Mouse"
	_, err := uc.Update(42, dto.UpdateProductRequest{Name: &newName})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_UpdateRevalidaElNombre(t *testing.T) {
	uc := NewProductUseCase(newFakeProductRepo())
	created, err := uc.Create(dto.CreateProductRequest{
		Name: "Mouse", Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	empty := "   "
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{Name: &empty})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
