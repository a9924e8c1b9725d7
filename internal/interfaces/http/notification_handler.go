package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

// notificationCenter lo implementa *notify.Center.
type notificationCenter interface {
	Active(audience entity.NotificationAudience) []entity.Notification
	Dismiss(audience entity.NotificationAudience, id string) error
}

// NotificationHandler expone los avisos efímeros de un portal.
type NotificationHandler struct {
	center   notificationCenter
	audience entity.NotificationAudience
}

// NewNotificationHandler construye el handler para la audiencia del portal.
func NewNotificationHandler(center notificationCenter, audience entity.NotificationAudience) *NotificationHandler {
	return &NotificationHandler{center: center, audience: audience}
}

// Active GET /api/notifications: avisos vigentes, del más antiguo al más nuevo.
func (h *NotificationHandler) Active(c *fiber.Ctx) error {
	return c.JSON(h.center.Active(h.audience))
}

// Dismiss DELETE /api/notifications/:id
func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	if err := h.center.Dismiss(h.audience, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
