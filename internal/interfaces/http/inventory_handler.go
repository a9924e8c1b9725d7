package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/application/inventory"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// InventoryHandler maneja materiales, movimientos y reposición.
type InventoryHandler struct {
	uc            *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment}
}

// CreateItem godoc
// @Summary      Cadastrar material
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockItemRequest  true  "Material"
// @Success      201   {object}  entity.StockItem
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.StockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.AddItem(c.Context(), inventory.AddItemInput{
		Name:            in.Name,
		Category:        entity.StockCategory(in.Category),
		Unit:            entity.Unit(in.Unit),
		InitialQuantity: in.InitialQuantity,
		MinimumQuantity: in.MinimumQuantity,
		UnitPrice:       in.UnitPrice,
		Supplier:        in.Supplier,
		ExpiryDate:      in.ExpiryDate,
		Actor:           actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListItems godoc
// @Summary      Listar materiais
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.StockItem
// @Router       /api/stock/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// GetItem GET /api/stock/items/:id
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// UpdateItem godoc
// @Summary      Editar material (preço, mínimo, fornecedor...)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID do material"
// @Param        body  body  dto.StockItemUpdateRequest  true  "Campos a alterar"
// @Success      200   {object}  entity.StockItem
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.StockItemUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	var category *entity.StockCategory
	if in.Category != nil {
		v := entity.StockCategory(*in.Category)
		category = &v
	}
	item, err := h.uc.UpdateItem(c.Context(), c.Params("id"), inventory.UpdateItemInput{
		Name:            in.Name,
		Category:        category,
		MinimumQuantity: in.MinimumQuantity,
		UnitPrice:       in.UnitPrice,
		Supplier:        in.Supplier,
		ExpiryDate:      in.ExpiryDate,
		Actor:           actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// DeleteItem DELETE /api/stock/items/:id. El historial de movimientos se conserva.
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveItem(c.Context(), c.Params("id"), actor(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterMovement godoc
// @Summary      Registrar movimento de estoque
// @Description  Uma saída maior que o saldo zera o material e o movimento fica marcado como clamped.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "stock_item_id, direction, quantity, reason, unit_cost (compras)"
// @Success      201   {object}  entity.StockMovement
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	mov, err := h.uc.ApplyMovement(c.Context(), inventory.MovementInput{
		StockItemID:  in.StockItemID,
		Direction:    entity.Direction(in.Direction),
		Quantity:     in.Quantity,
		Reason:       entity.MovementReason(in.Reason),
		UnitCost:     in.UnitCost,
		RelatedCarID: in.CarID,
		Actor:        actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// ListMovements GET /api/stock/movements?item_id=&car_id=&direction=&from=&to=&limit=&offset=
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, err := dateQuery(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := dateQuery(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-1)
		to = &end
	}
	movs, err := h.uc.ListMovements(c.Context(), repository.MovementFilter{
		StockItemID: c.Query("item_id"),
		CarID:       c.Query("car_id"),
		Direction:   entity.Direction(c.Query("direction")),
		From:        from,
		To:          to,
		Limit:       c.QueryInt("limit", 0),
		Offset:      c.QueryInt("offset", 0),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movs)
}

// LowStock GET /api/stock/low: materiales en o bajo el mínimo.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposição
// @Description  Materiais em ou abaixo do mínimo com a quantidade sugerida de compra,
//
//	ordenados pelo consumo em serviço dos últimos 30 dias.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
