package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/application/problems"
)

// ProblemHandler maneja los problemas generales reportados desde la loja.
type ProblemHandler struct {
	uc *problems.UseCase
}

// NewProblemHandler construye el handler.
func NewProblemHandler(uc *problems.UseCase) *ProblemHandler {
	return &ProblemHandler{uc: uc}
}

// Report godoc
// @Summary      Reportar problema geral
// @Description  O funcionário da sessão confirma com a própria senha.
// @Tags         store
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GeneralProblemRequest  true  "password, description"
// @Success      201   {object}  entity.GeneralProblem
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/store/problems [post]
func (h *ProblemHandler) Report(c *fiber.Ctx) error {
	var in dto.GeneralProblemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.Report(c.Context(), GetSubject(c), in.Password, in.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// List GET /api/problems?open=true
func (h *ProblemHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.QueryBool("open", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Resolve POST /api/problems/:id/resolve
func (h *ProblemHandler) Resolve(c *fiber.Ctx) error {
	p, err := h.uc.Resolve(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}
