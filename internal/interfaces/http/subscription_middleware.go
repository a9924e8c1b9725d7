package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/domain"
)

// subscriptionChecker contrato mínimo del middleware; lo implementa *auth.AuthUseCase.
type subscriptionChecker interface {
	CheckSubscription(email string) error
}

// RequireActiveSubscription bloquea el dashboard cuando la prueba gratuita venció.
// Debe usarse DESPUÉS de AuthMiddleware (necesita el email en LocalSubject).
//
// Comportamiento:
//   - 402 Payment Required → prueba vencida.
//   - 401 Unauthorized → el administrador del token ya no existe.
//   - 503 Service Unavailable → fallo al consultar el estado.
func RequireActiveSubscription(checker subscriptionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := GetSubject(c)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sessão sem usuário"})
		}
		err := checker.CheckSubscription(email)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, domain.ErrSubscriptionExpired):
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_EXPIRED",
				Message: "período de teste encerrado, assine para continuar",
			})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuário da sessão não existe"})
		default:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "SUBSCRIPTION_CHECK_FAILED",
				Message: "não foi possível verificar a assinatura",
			})
		}
	}
}
