package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/application/payroll"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// PayrollHandler maneja salarios, vales y comprobantes.
type PayrollHandler struct {
	uc    *payroll.UseCase
	clock ports.Clock
}

// NewPayrollHandler construye el handler. clock nil usa time.Now.
func NewPayrollHandler(uc *payroll.UseCase, clock ports.Clock) *PayrollHandler {
	return &PayrollHandler{uc: uc, clock: clock}
}

// Summary godoc
// @Summary      Folha do mês
// @Description  Salário, total pago e saldo de cada funcionário com salário no mês corrente.
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  payroll.Summary
// @Router       /api/payroll/summary [get]
func (h *PayrollHandler) Summary(c *fiber.Ctx) error {
	list, err := h.uc.MonthlySummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Pay godoc
// @Summary      Registrar pagamento
// @Description  Vale exige valor. Salário sem valor paga o saldo restante do mês.
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentRequest  true  "Pagamento"
// @Success      201   {object}  entity.PaymentRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/payroll/payments [post]
func (h *PayrollHandler) Pay(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := h.uc.Pay(c.Context(), payroll.PayInput{
		EmployeeID: in.EmployeeID,
		Type:       entity.PaymentType(in.Type),
		Amount:     in.Amount,
		Notes:      in.Notes,
		Actor:      actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// ListPayments GET /api/payroll/payments?employee_id=&from=&to=
// Sin fechas devuelve el mes corriente; to es inclusivo.
func (h *PayrollHandler) ListPayments(c *fiber.Ctx) error {
	start, end := payroll.MonthRange(h.clock.Now())
	from, err := dateQuery(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := dateQuery(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	if from != nil {
		start = *from
	}
	if to != nil {
		end = to.AddDate(0, 0, 1)
	}
	list, err := h.uc.ListPayments(c.Context(), c.Query("employee_id"), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Receipt GET /api/payroll/payments/:id/receipt
func (h *PayrollHandler) Receipt(c *fiber.Ctx) error {
	body, err := h.uc.Receipt(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", "recibo_"+shortRef(c.Params("id"))+".pdf", body)
}
