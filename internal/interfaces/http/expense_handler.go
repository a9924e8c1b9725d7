package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/application/expenses"
)

// ExpenseHandler maneja gastos fijos y el resumen del mes.
type ExpenseHandler struct {
	uc *expenses.UseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *expenses.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar despesa
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseRequest  true  "Despesa fixa ou compra avulsa"
// @Success      201   {object}  entity.FixedExpense
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	exp, err := h.uc.Add(c.Context(), expenses.AddInput{
		Name:              in.Name,
		MonthlyCost:       in.MonthlyCost,
		IsOneTimePurchase: in.IsOneTimePurchase,
		PurchaseDate:      in.PurchaseDate,
		InvoiceImage:      in.InvoiceImage,
		Actor:             actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exp)
}

// List GET /api/expenses
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Delete DELETE /api/expenses/:id. Las despesas de salario devuelven 409.
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Resumo de despesas do mês
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  expenses.Summary
// @Router       /api/expenses/summary [get]
func (h *ExpenseHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sum)
}
