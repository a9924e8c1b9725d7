package dto

import "time"

// RegisterRequest body para POST /api/auth/register (primer acceso al dashboard).
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StoreLoginRequest body para POST /api/store/login.
type StoreLoginRequest struct {
	EmployeeID string `json:"employee_id"`
	Password   string `json:"password"`
}

// UserResponse administrador sin datos sensibles.
type UserResponse struct {
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndDate       *time.Time `json:"trial_end_date,omitempty"`
	TrialExpired       bool       `json:"trial_expired"`
	CreatedAt          time.Time  `json:"created_at"`
}

// EmployeeSession empleado autenticado en el portal de loja.
type EmployeeSession struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id"`
}

// LoginResponse token + sesión del portal correspondiente.
type LoginResponse struct {
	Token    string           `json:"token"`
	User     *UserResponse    `json:"user,omitempty"`
	Employee *EmployeeSession `json:"employee,omitempty"`
}
