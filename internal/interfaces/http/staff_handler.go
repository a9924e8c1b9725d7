package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/application/staff"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// StaffHandler maneja el cadastro de funcionários.
type StaffHandler struct {
	uc *staff.UseCase
}

// NewStaffHandler construye el handler.
func NewStaffHandler(uc *staff.UseCase) *StaffHandler {
	return &StaffHandler{uc: uc}
}

// Create godoc
// @Summary      Cadastrar funcionário
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmployeeRequest  true  "Funcionário"
// @Success      201   {object}  entity.Employee
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	emp, err := h.uc.Register(c.Context(), staff.RegisterInput{
		Name:       in.Name,
		Role:       entity.EmployeeRole(in.Role),
		Phone:      in.Phone,
		EmployeeID: in.EmployeeID,
		Password:   in.Password,
		Salary:     in.Salary,
		Actor:      actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(emp)
}

// List GET /api/employees (también /api/store/employees)
func (h *StaffHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/employees/:id
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	emp, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(emp)
}

// Update PUT /api/employees/:id. Un salario cero quita el gasto fijo asociado.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var in dto.EmployeeUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	var role *entity.EmployeeRole
	if in.Role != nil {
		r := entity.EmployeeRole(*in.Role)
		role = &r
	}
	emp, err := h.uc.Update(c.Context(), c.Params("id"), staff.UpdateInput{
		Name:       in.Name,
		Role:       role,
		Phone:      in.Phone,
		EmployeeID: in.EmployeeID,
		Password:   in.Password,
		Salary:     in.Salary,
		Actor:      actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(emp)
}

// Delete DELETE /api/employees/:id
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.Context(), c.Params("id"), actor(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Activity godoc
// @Summary      Atividade do funcionário
// @Description  Une o histórico de trabalho dos carros e a auditoria, do mais recente ao mais antigo.
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do funcionário"
// @Success      200  {array}   staff.Activity
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/activity [get]
func (h *StaffHandler) Activity(c *fiber.Ctx) error {
	list, err := h.uc.Activity(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
