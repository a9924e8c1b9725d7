package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/oficina-manager/internal/domain"
	apphttp "github.com/jhoicas/oficina-manager/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/oficina-manager/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testAdminEmail = "dono@oficina.com"
	testEmployeeID = "00000000-0000-0000-0000-000000000001"
	testIssuer     = "oficina-manager-test"
	testExpMin     = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequirePortal(store) y RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePortal(pkgjwt.PortalStore),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

func storeToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Identity{
		Subject: testEmployeeID,
		Portal:  pkgjwt.PortalStore,
		Name:    "João",
		Role:    role,
	})
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func dashboardToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Identity{
		Subject: testAdminEmail,
		Portal:  pkgjwt.PortalDashboard,
		Name:    "Dono",
		Role:    "admin",
	})
	require.NoError(t, err)
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_GerenteAccedeRutaGerente(t *testing.T) {
	app := buildTestApp("Gerente de Loja")
	resp := doRequest(t, app, storeToken(t, "Gerente de Loja"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Gerente de Loja", body["role"])
}

func TestRequireRole_PintorAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp("Gerente de Loja", "Pintor")
	resp := doRequest(t, app, storeToken(t, "Pintor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_LixadorBloqueadoEnRutaGerente(t *testing.T) {
	app := buildTestApp("Gerente de Loja")
	resp := doRequest(t, app, storeToken(t, "Lixador"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp("Gerente de Loja")
	resp := doRequest(t, app, storeToken(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_RechazaCabeceras(t *testing.T) {
	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"sin Bearer", "Token abc", "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, buildTestApp("Pintor"), tc.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePortal
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePortal_TokenDashboardEnLoja_Retorna403(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, dashboardToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "WRONG_PORTAL")
}

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"subject": apphttp.GetSubject(c),
			"portal":  apphttp.GetPortal(c),
			"name":    apphttp.GetName(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", storeToken(t, "Pintor"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testEmployeeID, body["subject"])
	assert.Equal(t, pkgjwt.PortalStore, body["portal"])
	assert.Equal(t, "João", body["name"])
	assert.Equal(t, "Pintor", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireActiveSubscription
// ──────────────────────────────────────────────────────────────────────────────

type checkerFunc func(email string) error

func (f checkerFunc) CheckSubscription(email string) error { return f(email) }

func TestRequireActiveSubscription(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"ativa", nil, http.StatusOK, ""},
		{"teste vencido", domain.ErrSubscriptionExpired, http.StatusPaymentRequired, "SUBSCRIPTION_EXPIRED"},
		{"usuário removido", domain.ErrNotFound, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"falha no repositório", errors.New("boom"), http.StatusServiceUnavailable, "SUBSCRIPTION_CHECK_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			checker := checkerFunc(func(email string) error {
				seen = email
				return tc.err
			})
			app := fiber.New()
			app.Get("/protected",
				apphttp.AuthMiddleware(testJWTSecret),
				apphttp.RequireActiveSubscription(checker),
				func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
			)

			resp := doRequest(t, app, dashboardToken(t))
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, testAdminEmail, seen)
			if tc.code != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tc.code)
			}
		})
	}
}
