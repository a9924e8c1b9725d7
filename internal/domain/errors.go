package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrAuth                = errors.New("credenciales inválidas")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInvalidTransition   = errors.New("transición de estado inválida")
	ErrExceedsBalance      = errors.New("el valor excede el saldo pendiente")
	ErrSubscriptionExpired = errors.New("período de prueba vencido")
)
