package repository

import "github.com/jhoicas/oficina-manager/internal/domain/entity"

// UserRepository puerto de administradores del dashboard.
type UserRepository interface {
	GetByEmail(email string) (*entity.User, error)
	Save(user *entity.User) error
}

// ProfileRepository perfil único de la oficina.
type ProfileRepository interface {
	Get() (*entity.WorkshopProfile, error)
	Save(profile *entity.WorkshopProfile) error
}
