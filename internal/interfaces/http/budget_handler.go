package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/budget"
	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// BudgetHandler maneja presupuestos y su conversión en carro.
type BudgetHandler struct {
	uc *budget.UseCase
}

// NewBudgetHandler construye el handler.
func NewBudgetHandler(uc *budget.UseCase) *BudgetHandler {
	return &BudgetHandler{uc: uc}
}

func budgetInput(c *fiber.Ctx, in dto.BudgetRequest) budget.Input {
	return budget.Input{
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		CustomerEmail: in.CustomerEmail,
		VehicleBrand:  in.VehicleBrand,
		VehicleModel:  in.VehicleModel,
		VehicleYear:   in.VehicleYear,
		VehiclePlate:  in.VehiclePlate,
		Services:      in.Services,
		Images:        in.Images,
		Actor:         actor(c),
	}
}

// Create godoc
// @Summary      Criar orçamento
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BudgetRequest  true  "Orçamento"
// @Success      201   {object}  entity.Budget
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var in dto.BudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, err := h.uc.Create(c.Context(), budgetInput(c, in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// List GET /api/budgets?status=Pendente
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), entity.BudgetStatus(c.Query("status")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/budgets/:id
func (h *BudgetHandler) Get(c *fiber.Ctx) error {
	b, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(b)
}

// Update PUT /api/budgets/:id. Solo presupuestos Pendente.
func (h *BudgetHandler) Update(c *fiber.Ctx) error {
	var in dto.BudgetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, err := h.uc.UpdateDetails(c.Context(), c.Params("id"), budgetInput(c, in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(b)
}

// UpdateStatus godoc
// @Summary      Aprovar ou rejeitar orçamento
// @Tags         budgets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID do orçamento"
// @Param        body  body  dto.BudgetStatusRequest  true  "Aprovado | Rejeitado"
// @Success      200   {object}  entity.Budget
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/status [patch]
func (h *BudgetHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.BudgetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), entity.BudgetStatus(in.Status), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(b)
}

// Convert godoc
// @Summary      Converter orçamento aprovado em serviço
// @Tags         budgets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do orçamento"
// @Success      201  {object}  entity.Car
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/budgets/{id}/convert [post]
func (h *BudgetHandler) Convert(c *fiber.Ctx) error {
	car, err := h.uc.ConvertToCar(c.Context(), c.Params("id"), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(car)
}

// PDF GET /api/budgets/:id/pdf
func (h *BudgetHandler) PDF(c *fiber.Ctx) error {
	body, err := h.uc.PDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", "orcamento_"+shortRef(c.Params("id"))+".pdf", body)
}

func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
