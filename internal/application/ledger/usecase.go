package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// UseCase es el motor de stock: ejecuta cada mutación de inventario como una
// unidad atómica (venta, ajuste relativo, escritura absoluta) preservando el
// invariante stock >= 0 bajo concurrencia. Cada operación bloquea la fila del
// producto (SELECT FOR UPDATE) y aplica la mutación con una sentencia
// condicional, así dos ventas concurrentes del mismo producto no pueden
// gastar el stock dos veces.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase construye el motor sobre el runner transaccional.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// RecordSale registra una venta: valida cantidad, toma la foto del precio
// vigente del producto (cualquier precio enviado por el caller se ignora),
// verifica stock, inserta la venta y descuenta el stock en la misma
// transacción. Si algo falla después de iniciar la tx, todo se revierte:
// nunca existe una venta sin su descuento de stock, ni al revés.
func (uc *UseCase) RecordSale(ctx context.Context, productID int64, quantity int) (*entity.Sale, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	opID := uuid.New().String()

	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Stock < quantity {
			return domain.ErrInsufficientStock
		}
		s, err := entity.NewSale(product.ID, quantity, product.Price)
		if err != nil {
			return err
		}
		if err := saleRepo.Create(s); err != nil {
			return err
		}
		ok, err := productRepo.DecrementStock(product.ID, quantity)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		if err := movementRepo.Create(&entity.StockMovement{
			OperationID: opID,
			ProductID:   product.ID,
			Type:        entity.MovementTypeSale,
			Quantity:    -quantity,
		}); err != nil {
			return err
		}
		s.ProductName = product.Name
		sale = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// AdjustStock aplica un delta relativo (negativo: merma o daño; positivo:
// reposición). Falla con ErrInsufficientStock si el resultado quedaría
// negativo. Devuelve el producto ya actualizado.
func (uc *UseCase) AdjustStock(ctx context.Context, productID int64, delta int) (*entity.Product, error) {
	opID := uuid.New().String()

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Stock+delta < 0 {
			return domain.ErrInsufficientStock
		}
		ok, err := productRepo.AdjustStock(productID, delta)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		if err := movementRepo.Create(&entity.StockMovement{
			OperationID: opID,
			ProductID:   productID,
			Type:        entity.MovementTypeAdjustment,
			Quantity:    delta,
		}); err != nil {
			return err
		}
		product.Stock += delta
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetStock escribe la cantidad absoluta. Garantía más débil que AdjustStock:
// con escritores concurrentes gana el último; quien necesite cambios
// relativos sin carreras debe usar AdjustStock. La cantidad negativa se
// rechaza antes de emitir sentencia alguna.
func (uc *UseCase) SetStock(ctx context.Context, productID int64, quantity int) (*entity.Product, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	opID := uuid.New().String()

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		ok, err := productRepo.SetStock(productID, quantity)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		if err := movementRepo.Create(&entity.StockMovement{
			OperationID: opID,
			ProductID:   productID,
			Type:        entity.MovementTypeSet,
			Quantity:    quantity, // cantidad resultante, no delta
		}); err != nil {
			return err
		}
		product.Stock = quantity
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
