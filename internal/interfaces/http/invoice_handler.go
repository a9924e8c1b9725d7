package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/billing"
	"github.com/jhoicas/oficina-manager/internal/application/dto"
)

// InvoiceHandler maneja las notas de servicio (protegido).
type InvoiceHandler struct {
	uc *billing.UseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.UseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create godoc
// @Summary      Emitir nota de serviço
// @Description  O carro deve estar concluído. Cada carro recebe uma única nota.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoiceRequest  true  "car_id, descrição e valor opcionais"
// @Success      201   {object}  entity.IssuedInvoice
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	inv, err := h.uc.IssueInvoice(c.Context(), billing.IssueInput{
		CarID:        in.CarID,
		Description:  in.Description,
		TotalValue:   in.TotalValue,
		InvoiceImage: in.InvoiceImage,
		Actor:        actor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// List GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/invoices/:id
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inv)
}

// GetPDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) GetPDF(c *fiber.Ctx) error {
	body, name, err := h.uc.PDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, "application/pdf", name, body)
}

// GetXML GET /api/invoices/:id/xml
func (h *InvoiceHandler) GetXML(c *fiber.Ctx) error {
	body, name, err := h.uc.XML(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, fiber.MIMEApplicationXMLCharsetUTF8, name, body)
}
