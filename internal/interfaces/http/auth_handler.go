package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/oficina-manager/internal/application/auth"
	"github.com/jhoicas/oficina-manager/internal/application/dto"
)

// AuthHandler maneja registro, login de ambos portales y suscripción.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Primeiro acesso ao dashboard (inicia o teste gratuito)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password"
// @Success      201   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Login do dashboard
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Administrador da sessão
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetSubject(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Subscribe godoc
// @Summary      Ativar assinatura
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/subscribe [post]
func (h *AuthHandler) Subscribe(c *fiber.Ctx) error {
	out, err := h.uc.Subscribe(GetSubject(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StoreLogin godoc
// @Summary      Login do portal da loja (código do funcionário + senha)
// @Tags         store
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StoreLoginRequest  true  "employee_id, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/store/login [post]
func (h *AuthHandler) StoreLogin(c *fiber.Ctx) error {
	var in dto.StoreLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.StoreLogin(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
