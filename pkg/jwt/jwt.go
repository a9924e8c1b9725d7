package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Portales de acceso.
const (
	PortalDashboard = "dashboard"
	PortalStore     = "store"
)

// Claims incluye los claims estándar JWT más la identidad de la sesión de portal.
// Role permite que el middleware RBAC decida sin consultar el estado.
type Claims struct {
	jwt.RegisteredClaims
	Portal string `json:"portal"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Identity datos de sesión que viajan en el token.
type Identity struct {
	Subject string // email del administrador o ID del empleado
	Portal  string
	Name    string
	Role    string
}

// Generate genera un token JWT firmado con la identidad indicada.
func Generate(secret, issuer string, expMinutes int, id Identity) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Portal: id.Portal,
		Name:   id.Name,
		Role:   id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{
		Subject: claims.Subject,
		Portal:  claims.Portal,
		Name:    claims.Name,
		Role:    claims.Role,
	}, nil
}
