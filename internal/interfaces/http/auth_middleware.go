package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalSubject = "subject"
	LocalPortal  = "portal"
	LocalName    = "name"
	LocalRole    = "role"
)

// AuthMiddleware valida el Bearer Token JWT y carga la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || id.Subject == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalSubject, id.Subject)
		c.Locals(LocalPortal, id.Portal)
		c.Locals(LocalName, id.Name)
		c.Locals(LocalRole, id.Role)
		return c.Next()
	}
}

// RequirePortal restringe la ruta a tokens emitidos por el portal indicado.
func RequirePortal(portal string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetPortal(c) != portal {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "WRONG_PORTAL", Message: "rota exclusiva do portal " + portal})
		}
		return c.Next()
	}
}

// RequireRole autoriza si el rol del token está entre los permitidos.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sem função"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "função sem permissão para esta rota"})
	}
}

// GetSubject email del administrador o ID del empleado.
func GetSubject(c *fiber.Ctx) string { return local(c, LocalSubject) }

// GetPortal portal que emitió el token.
func GetPortal(c *fiber.Ctx) string { return local(c, LocalPortal) }

// GetName nombre de la sesión.
func GetName(c *fiber.Ctx) string { return local(c, LocalName) }

// GetRole rol de la sesión.
func GetRole(c *fiber.Ctx) string { return local(c, LocalRole) }

// actor autor de la operación para la auditoría.
func actor(c *fiber.Ctx) entity.Actor {
	return entity.Actor{ID: GetSubject(c), Name: GetName(c)}
}

func local(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
