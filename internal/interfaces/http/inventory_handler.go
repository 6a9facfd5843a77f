package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/application/inventory"
)

// InventoryHandler maneja compras, ajustes y consultas de inventario por lotes (protegido).
type InventoryHandler struct {
	uc            *inventory.RegisterMovementUseCase
	query         *inventory.QueryUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	uc *inventory.RegisterMovementUseCase,
	query *inventory.QueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{uc: uc, query: query, replenishment: replenishment}
}

// RegisterPurchase godoc
// @Summary      Registrar compra (crea un lote)
// @Description  Crea un lote nuevo, registra el movimiento de entrada y recalcula el precio de venta
// @Description  sobre el costo promedio ponderado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del producto"
// @Param        body  body  dto.PurchaseRequest  true  "quantity, unit_cost, supplier, purchase_date, expiration_date"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/purchases [post]
func (h *InventoryHandler) RegisterPurchase(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.PurchaseRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RegisterPurchaseFromRequest(c.Context(), GetUserID(c), productID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock
// @Description  delta negativo consume lotes en orden PEPS; positivo crea un lote de ajuste.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "delta, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AdjustStockRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AdjustStockFromRequest(c.Context(), GetUserID(c), productID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListLots lotes del producto en orden PEPS.
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.query.ListLots(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements historial de movimientos (kardex) con filtros por producto, tipo y fechas.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
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
	out, err := h.query.ListMovements(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Valuation valor del inventario a costo de lote.
func (h *InventoryHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.query.Valuation(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos activos con stock <= mínimo, cantidad sugerida y prioridad por ventas recientes.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
