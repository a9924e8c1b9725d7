// Package notify mantiene los avisos efímeros mostrados a los usuarios.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
)

var (
	_ ports.Notifier = (*Center)(nil)
	_ ports.Notifier = sharedNotifier{}
)

// Center cola de notificaciones con vencimiento fijo. Las vencidas se descartan
// al publicar y al leer.
type Center struct {
	mu    sync.Mutex
	items []entity.Notification
	ttl   time.Duration
	clock ports.Clock
}

// NewCenter crea el centro con el tiempo de vida indicado (5s si es cero).
func NewCenter(ttl time.Duration, clock ports.Clock) *Center {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &Center{ttl: ttl, clock: clock}
}

// Push publica un aviso solo para el dashboard.
func (c *Center) Push(kind entity.NotificationType, message string) entity.Notification {
	return c.push(kind, message, entity.AudienceDashboard)
}

// Shared devuelve un Notifier cuyos avisos también ve el portal de loja.
func (c *Center) Shared() ports.Notifier { return sharedNotifier{c: c} }

type sharedNotifier struct{ c *Center }

func (s sharedNotifier) Push(kind entity.NotificationType, message string) entity.Notification {
	return s.c.push(kind, message, entity.AudienceAll)
}

func (c *Center) push(kind entity.NotificationType, message string, audience entity.NotificationAudience) entity.Notification {
	now := c.clock.Now()
	n := entity.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      kind,
		Audience:  audience,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.mu.Lock()
	c.pruneLocked(now)
	c.items = append(c.items, n)
	c.mu.Unlock()
	return n
}

// Len cantidad de avisos retenidos, vigentes o no.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Active avisos vigentes para la audiencia, del más antiguo al más reciente.
func (c *Center) Active(audience entity.NotificationAudience) []entity.Notification {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked(now)
	out := make([]entity.Notification, 0, len(c.items))
	for _, n := range c.items {
		if n.VisibleTo(audience) {
			out = append(out, n)
		}
	}
	return out
}

// Dismiss descarta un aviso antes de su vencimiento. La loja no puede descartar
// avisos que no ve.
func (c *Center) Dismiss(audience entity.NotificationAudience, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.items {
		if n.ID == id && n.VisibleTo(audience) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (c *Center) pruneLocked(now time.Time) {
	kept := c.items[:0]
	for _, n := range c.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	clear(c.items[len(kept):])
	c.items = kept
}
