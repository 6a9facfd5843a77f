// Package pos modela el carrito de venta de recepción.
package pos

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

// Line línea del carrito.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Cart carrito en memoria; mantiene el orden de inserción de las líneas.
// No es seguro para uso concurrente: quien lo comparta debe sincronizar.
type Cart struct {
	lines []Line
}

// NewCart crea un carrito vacío.
func NewCart() *Cart {
	return &Cart{}
}

// Add agrega qty del producto; si ya está en el carrito suma a la línea existente
// y actualiza el precio al vigente.
func (c *Cart) Add(productID int64, name string, qty, unitPrice decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) || unitPrice.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity = c.lines[i].Quantity.Add(qty)
		c.lines[i].UnitPrice = unitPrice
		c.lines[i].Name = name
		c.lines[i].Subtotal = c.lines[i].Quantity.Mul(unitPrice).Round(2)
		return nil
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      name,
		Quantity:  qty,
		UnitPrice: unitPrice,
		Subtotal:  qty.Mul(unitPrice).Round(2),
	})
	return nil
}

// SetQuantity fija la cantidad de una línea; 0 la elimina.
func (c *Cart) SetQuantity(productID int64, qty decimal.Decimal) error {
	if qty.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	i := c.index(productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if qty.IsZero() {
		c.removeAt(i)
		return nil
	}
	c.lines[i].Quantity = qty
	c.lines[i].Subtotal = qty.Mul(c.lines[i].UnitPrice).Round(2)
	return nil
}

// Remove quita la línea del producto.
func (c *Cart) Remove(productID int64) error {
	i := c.index(productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.removeAt(i)
	return nil
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.lines = nil
}

// Quantity cantidad actual del producto en el carrito.
func (c *Cart) Quantity(productID int64) decimal.Decimal {
	if i := c.index(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return decimal.Zero
}

// Lines copia de las líneas.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty true si no hay líneas.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Totals cantidad de artículos y subtotal en USD.
func (c *Cart) Totals() (items, subtotal decimal.Decimal) {
	items, subtotal = decimal.Zero, decimal.Zero
	for _, l := range c.lines {
		items = items.Add(l.Quantity)
		subtotal = subtotal.Add(l.Subtotal)
	}
	return items, subtotal
}

func (c *Cart) index(productID int64) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
