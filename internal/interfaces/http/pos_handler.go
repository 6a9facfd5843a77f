package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/pos"
)

// POSHandler carrito de recepción y ventas.
type POSHandler struct {
	carts *pos.CartService
	sales *pos.SaleUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(carts *pos.CartService, sales *pos.SaleUseCase) *POSHandler {
	return &POSHandler{carts: carts, sales: sales}
}

// GetCart carrito del usuario autenticado.
func (h *POSHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(h.carts.Get(GetUserID(c)))
}

// ClearCart vacía el carrito.
func (h *POSHandler) ClearCart(c *fiber.Ctx) error {
	h.carts.Clear(GetUserID(c))
	return c.JSON(h.carts.Get(GetUserID(c)))
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartItemRequest  true  "product_id, quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/cart/items [post]
func (h *POSHandler) AddItem(c *fiber.Ctx) error {
	var in dto.CartItemRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.carts.AddItem(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetQuantity fija la cantidad de una línea; 0 la elimina.
func (h *POSHandler) SetQuantity(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CartQuantityRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.carts.SetQuantity(c.Context(), GetUserID(c), productID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *POSHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.carts.RemoveItem(GetUserID(c), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Cobrar el carrito
// @Description  Descuenta los lotes en orden PEPS dentro de una transacción y vacía el carrito.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "payment_method, exchange_rate, reference, discount_usd, client_id"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pos/checkout [post]
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.sales.Checkout(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateSale venta directa con sus líneas, sin carrito.
func (h *POSHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.sales.CreateSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *POSHandler) ListSales(c *fiber.Ctx) error {
	var in dto.SaleListRequest
	if err := bindQuery(c, &in); err != nil {
		return respondError(c, err)
	}
	var err error
	if in.From, err = queryDate(c, "from"); err != nil {
		return respondError(c, err)
	}
	if in.To, err = queryDate(c, "to"); err != nil {
		return respondError(c, err)
	}
	out, err := h.sales.ListSales(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *POSHandler) GetSale(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.sales.GetSale(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// VoidSale godoc
// @Summary      Anular venta
// @Description  Devuelve las cantidades a los mismos lotes de los que salieron.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID de la venta"
// @Param        body  body  dto.VoidSaleRequest  true  "reason"
// @Success      200   {object}  dto.SaleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/void [post]
func (h *POSHandler) VoidSale(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.VoidSaleRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.sales.VoidSale(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receipt recibo PDF de la venta.
func (h *POSHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.sales.ReceiptPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, data, filename)
}
