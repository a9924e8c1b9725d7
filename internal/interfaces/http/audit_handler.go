package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// AuditHandler consulta y exporta la auditoría.
type AuditHandler struct {
	uc *audit.UseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// filter lee actor_id, action, from y to (AAAA-MM-DD, to inclusivo).
func (h *AuditHandler) filter(c *fiber.Ctx) (repository.AuditFilter, error) {
	f := repository.AuditFilter{
		ActorID: c.Query("actor_id"),
		Action:  entity.AuditAction(c.Query("action")),
	}
	from, err := dateQuery(c, "from")
	if err != nil {
		return f, err
	}
	to, err := dateQuery(c, "to")
	if err != nil {
		return f, err
	}
	if to != nil {
		end := to.AddDate(0, 0, 1).Add(-1)
		to = &end
	}
	f.From, f.To = from, to
	return f, nil
}

// List godoc
// @Summary      Auditoria
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        actor_id  query  string  false  "Autor"
// @Param        action    query  string  false  "Ação (ex.: STAGE_COMPLETED)"
// @Param        from      query  string  false  "AAAA-MM-DD"
// @Param        to        query  string  false  "AAAA-MM-DD"
// @Param        limit     query  int     false  "Máximo por página (padrão 20)"
// @Param        offset    query  int     false  "Deslocamento"
// @Success      200       {object}  map[string]interface{}
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	f, err := h.filter(c)
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage()
	entries, err := h.uc.List(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	total := len(entries)
	lo := min(page.Offset, total)
	hi := min(lo+page.Limit, total)
	return c.JSON(fiber.Map{
		"items": entries[lo:hi],
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// ExportCSV GET /api/audit/export: mismos filtros que List, sin paginar.
func (h *AuditHandler) ExportCSV(c *fiber.Ctx) error {
	f, err := h.filter(c)
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := h.uc.ExportCSV(c.Context(), f, &buf); err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("auditoria_%s.csv", c.Query("from", "completa"))
	return sendFile(c, "text/csv; charset=utf-8", name, buf.Bytes())
}
