// Package auth autentica a los usuarios de los dos portales y controla la prueba gratuita.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
	"github.com/jhoicas/oficina-manager/pkg/jwt"
)

// RoleAdmin rol del administrador del dashboard en el token.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro, login de ambos portales y suscripción.
// Las contraseñas se comparan en texto plano.
type AuthUseCase struct {
	txRunner     ports.TxRunner
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	jwtCfg       JWTConfig
	trialDays    int
	clock        ports.Clock
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(txRunner ports.TxRunner, userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository, jwtCfg JWTConfig, trialDays int, clock ports.Clock) *AuthUseCase {
	if trialDays <= 0 {
		trialDays = 14
	}
	return &AuthUseCase{txRunner: txRunner, userRepo: userRepo, employeeRepo: employeeRepo, jwtCfg: jwtCfg, trialDays: trialDays, clock: clock}
}

// Register crea el administrador e inicia la prueba. Devuelve ErrDuplicate si el email ya existe.
// La verificación y el alta corren en la misma transacción.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email e senha são obrigatórios", domain.ErrInvalidInput)
	}
	now := uc.clock.Now()
	trialEnd := now.AddDate(0, 0, uc.trialDays)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		Email:              email,
		Name:               name,
		Password:           in.Password,
		SubscriptionStatus: entity.SubscriptionTrial,
		TrialEndDate:       &trialEnd,
		CreatedAt:          now,
	}
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		existing, err := tx.Users.GetByEmail(email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: email %s", domain.ErrDuplicate, email)
		}
		return tx.Users.Save(user)
	})
	if err != nil {
		return nil, err
	}
	return uc.dashboardSession(user)
}

// Login verifica email/password y genera el token del dashboard.
// Una prueba vencida no impide el login: el middleware limita el acceso.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuth
		}
		return nil, err
	}
	if user.Password != in.Password {
		return nil, domain.ErrAuth
	}
	return uc.dashboardSession(user)
}

// Subscribe activa la suscripción y descarta la fecha de fin de prueba.
func (uc *AuthUseCase) Subscribe(email string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	user.SubscriptionStatus = entity.SubscriptionActive
	user.TrialEndDate = nil
	if err := uc.userRepo.Save(user); err != nil {
		return nil, err
	}
	return uc.toUserResponse(user), nil
}

// Me devuelve el administrador de la sesión.
func (uc *AuthUseCase) Me(email string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	return uc.toUserResponse(user), nil
}

// CheckSubscription devuelve ErrSubscriptionExpired si la prueba del usuario venció.
// Una prueba vencida se persiste como EXPIRED la primera vez que se detecta.
func (uc *AuthUseCase) CheckSubscription(email string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if !user.TrialExpired(uc.clock.Now()) {
		return nil
	}
	if user.SubscriptionStatus == entity.SubscriptionTrial {
		user.SubscriptionStatus = entity.SubscriptionExpired
		if err := uc.userRepo.Save(user); err != nil {
			return err
		}
	}
	return domain.ErrSubscriptionExpired
}

// StoreLogin autentica al empleado por código y contraseña (coincidencia exacta).
func (uc *AuthUseCase) StoreLogin(in dto.StoreLoginRequest) (*dto.LoginResponse, error) {
	emp, err := uc.employeeRepo.GetByEmployeeID(in.EmployeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuth
		}
		return nil, err
	}
	if emp.Password != in.Password {
		return nil, domain.ErrAuth
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		Subject: emp.ID,
		Portal:  jwt.PortalStore,
		Name:    emp.Name,
		Role:    string(emp.Role),
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Employee: &dto.EmployeeSession{
			ID:         emp.ID,
			Name:       emp.Name,
			Role:       string(emp.Role),
			EmployeeID: emp.EmployeeID,
		},
	}, nil
}

func (uc *AuthUseCase) dashboardSession(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		Subject: user.Email,
		Portal:  jwt.PortalDashboard,
		Name:    user.Name,
		Role:    RoleAdmin,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: uc.toUserResponse(user)}, nil
}

func (uc *AuthUseCase) toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Email:              u.Email,
		Name:               u.Name,
		SubscriptionStatus: string(u.SubscriptionStatus),
		TrialEndDate:       u.TrialEndDate,
		TrialExpired:       u.TrialExpired(uc.clock.Now()),
		CreatedAt:          u.CreatedAt,
	}
}
