// Package console implementa el menú interactivo por stdin, una alternativa
// ligera a la API HTTP para operar el inventario desde la terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/ledger"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain"
)

// Deps dependencias del menú.
type Deps struct {
	Ledger     *ledger.UseCase
	ProductUC  *usecase.ProductUseCase
	SaleUC     *usecase.SaleUseCase
	SupplierUC *usecase.SupplierUseCase
	ReportUC   *usecase.ReportUseCase
}

// Console menú interactivo.
type Console struct {
	deps Deps
	in   *bufio.Scanner
	out  io.Writer
}

// New construye el menú leyendo de in y escribiendo en out.
func New(deps Deps, in io.Reader, out io.Writer) *Console {
	return &Console{deps: deps, in: bufio.NewScanner(in), out: out}
}

// Run ejecuta el bucle del menú hasta que el usuario elija salir o se agote
// la entrada. El contexto cancela operaciones en curso, no la lectura de stdin.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.printf("\n══ Sistema de Ventas ══\n")
		c.printf(" 1. Listar productos\n")
		c.printf(" 2. Agregar producto\n")
		c.printf(" 3. Registrar venta\n")
		c.printf(" 4. Ajustar stock\n")
		c.printf(" 5. Fijar stock\n")
		c.printf(" 6. Listar ventas\n")
		c.printf(" 7. Reporte de inventario\n")
		c.printf(" 8. Reporte de ventas (últimos 30 días)\n")
		c.printf(" 9. Listar proveedores\n")
		c.printf(" 0. Salir\n")

		choice, ok := c.prompt("Opción: ")
		if !ok {
			return nil
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = c.listProducts()
		case "2":
			err = c.addProduct()
		case "3":
			err = c.recordSale(ctx)
		case "4":
			err = c.adjustStock(ctx)
		case "5":
			err = c.setStock(ctx)
		case "6":
			err = c.listSales()
		case "7":
			err = c.inventoryReport()
		case "8":
			err = c.salesReport()
		case "9":
			err = c.listSuppliers()
		case "0":
			c.printf("Hasta luego.\n")
			return nil
		default:
			c.printf("Opción no reconocida.\n")
			continue
		}
		if err != nil {
			c.printError(err)
		}
	}
}

func (c *Console) listProducts() error {
	out, err := c.deps.ProductUC.List(dto.PageRequest{Limit: 100})
	if err != nil {
		return err
	}
	if len(out.Items) == 0 {
		c.printf("No hay productos.\n")
		return nil
	}
	c.printf("%-5s %-30s %10s %8s\n", "ID", "Nombre", "Precio", "Stock")
	for _, p := range out.Items {
		c.printf("%-5d %-30s %10s %8d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	}
	return nil
}

func (c *Console) addProduct() error {
	name, ok := c.prompt("Nombre: ")
	if !ok {
		return nil
	}
	priceStr, ok := c.prompt("Precio: ")
	if !ok {
		return nil
	}
	price, err := decimal.NewFromString(strings.TrimSpace(priceStr))
	if err != nil {
		return fmt.Errorf("%w: precio inválido", domain.ErrInvalidInput)
	}
	stock, ok := c.promptInt("Stock inicial: ")
	if !ok {
		return nil
	}
	out, err := c.deps.ProductUC.Create(dto.CreateProductRequest{Name: name, Price: price, Stock: stock})
	if err != nil {
		return err
	}
	c.printf("Producto creado con ID %d.\n", out.ID)
	return nil
}

func (c *Console) recordSale(ctx context.Context) error {
	productID, ok := c.promptInt64("ID del producto: ")
	if !ok {
		return nil
	}
	quantity, ok := c.promptInt("Cantidad: ")
	if !ok {
		return nil
	}
	sale, err := c.deps.Ledger.RecordSale(ctx, productID, quantity)
	if err != nil {
		return err
	}
	c.printf("Venta #%d registrada: %d x %s = %s\n",
		sale.ID, sale.Quantity, sale.UnitPrice.StringFixed(2), sale.Total.StringFixed(2))
	return nil
}

func (c *Console) adjustStock(ctx context.Context) error {
	productID, ok := c.promptInt64("ID del producto: ")
	if !ok {
		return nil
	}
	delta, ok := c.promptInt("Delta (negativo descuenta): ")
	if !ok {
		return nil
	}
	product, err := c.deps.Ledger.AdjustStock(ctx, productID, delta)
	if err != nil {
		return err
	}
	c.printf("Stock de %q ahora: %d\n", product.Name, product.Stock)
	return nil
}

func (c *Console) setStock(ctx context.Context) error {
	productID, ok := c.promptInt64("ID del producto: ")
	if !ok {
		return nil
	}
	quantity, ok := c.promptInt("Nueva cantidad: ")
	if !ok {
		return nil
	}
	product, err := c.deps.Ledger.SetStock(ctx, productID, quantity)
	if err != nil {
		return err
	}
	c.printf("Stock de %q fijado en %d\n", product.Name, product.Stock)
	return nil
}

func (c *Console) listSales() error {
	out, err := c.deps.SaleUC.List(dto.PageRequest{Limit: 20})
	if err != nil {
		return err
	}
	if len(out.Items) == 0 {
		c.printf("No hay ventas registradas.\n")
		return nil
	}
	c.printf("%-5s %-25s %5s %10s %10s %s\n", "ID", "Producto", "Cant", "Precio", "Total", "Fecha")
	for _, s := range out.Items {
		c.printf("%-5d %-25s %5d %10s %10s %s\n",
			s.ID, s.ProductName, s.Quantity,
			s.UnitPrice.StringFixed(2), s.Total.StringFixed(2),
			s.SaleDate.Format("2006-01-02 15:04"))
	}
	return nil
}

func (c *Console) inventoryReport() error {
	rep, err := c.deps.ReportUC.Inventory(0)
	if err != nil {
		return err
	}
	c.printf("Productos: %d | Valor total: %s | Bajo stock: %d | Agotados: %d\n",
		rep.TotalProducts, rep.TotalValue.StringFixed(2), rep.LowStockItems, rep.OutOfStockItems)
	return nil
}

func (c *Console) salesReport() error {
	rep, err := c.deps.ReportUC.Sales(time.Time{}, time.Time{})
	if err != nil {
		return err
	}
	c.printf("Ventas: %d | Unidades: %d | Ingresos: %s\n",
		rep.TotalSales, rep.TotalUnits, rep.TotalRevenue.StringFixed(2))
	for i, tp := range rep.TopProducts {
		c.printf(" %d. %s — %d unidades (%s)\n", i+1, tp.Name, tp.Units, tp.Revenue.StringFixed(2))
	}
	return nil
}

func (c *Console) listSuppliers() error {
	out, err := c.deps.SupplierUC.List(dto.PageRequest{Limit: 100})
	if err != nil {
		return err
	}
	if len(out.Items) == 0 {
		c.printf("No hay proveedores.\n")
		return nil
	}
	for _, s := range out.Items {
		c.printf("%-5d %-30s %s\n", s.ID, s.Name, s.Email)
	}
	return nil
}

func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) promptInt(label string) (int, bool) {
	s, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		c.printf("Número inválido.\n")
		return 0, false
	}
	return n, true
}

func (c *Console) promptInt64(label string) (int64, bool) {
	s, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		c.printf("Número inválido.\n")
		return 0, false
	}
	return n, true
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) printError(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.printf("Entrada inválida: %v\n", err)
	case errors.Is(err, domain.ErrNotFound):
		c.printf("No encontrado: %v\n", err)
	case errors.Is(err, domain.ErrInsufficientStock):
		c.printf("Stock insuficiente: %v\n", err)
	case errors.Is(err, domain.ErrStorageUnavailable):
		c.printf("Almacenamiento no disponible: %v\n", err)
	default:
		c.printf("Error: %v\n", err)
	}
}
