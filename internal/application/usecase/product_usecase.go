package usecase

import (
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se modifica
// aquí: solo muta vía el motor de stock (ledger).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto vía el constructor validado de la entidad.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := entity.NewProduct(in.Name, in.Price, in.Stock, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza nombre, precio o proveedor de un producto existente.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	name := product.Name
	if in.Name != nil {
		name = *in.Name
	}
	price := product.Price
	if in.Price != nil {
		price = *in.Price
	}
	supplierID := product.SupplierID
	if in.SupplierID != nil {
		supplierID = in.SupplierID
	}
	// Revalida con el constructor: un producto inválido no existe ni a mitad de vida.
	updated, err := entity.NewProduct(name, price, product.Stock, supplierID)
	if err != nil {
		return nil, err
	}
	updated.ID = product.ID
	if err := uc.repo.Update(updated); err != nil {
		return nil, err
	}
	out := dto.FromProduct(updated)
	return &out, nil
}

// Delete elimina un producto. Si tiene ventas asociadas devuelve ErrConflict.
func (uc *ProductUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}
