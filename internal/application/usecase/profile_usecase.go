package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/oficina-manager/internal/application/audit"
	"github.com/jhoicas/oficina-manager/internal/application/dto"
	"github.com/jhoicas/oficina-manager/internal/application/ports"
	"github.com/jhoicas/oficina-manager/internal/domain/entity"
	"github.com/jhoicas/oficina-manager/internal/domain/repository"
)

// ProfileUseCase datos de la oficina que aparecen en los documentos.
type ProfileUseCase struct {
	txRunner ports.TxRunner
	repo     repository.ProfileRepository
	notifier ports.Notifier
	clock    ports.Clock
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(txRunner ports.TxRunner, repo repository.ProfileRepository, notifier ports.Notifier, clock ports.Clock) *ProfileUseCase {
	return &ProfileUseCase{txRunner: txRunner, repo: repo, notifier: notifier, clock: clock}
}

// Get devuelve el perfil (vacío si nunca se configuró).
func (uc *ProfileUseCase) Get() (*dto.ProfileResponse, error) {
	p, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	return entityToProfileResponse(p), nil
}

// Update aplica los campos informados y audita PROFILE_UPDATED.
func (uc *ProfileUseCase) Update(ctx context.Context, in dto.ProfileRequest, actor entity.Actor) (*dto.ProfileResponse, error) {
	var out *entity.WorkshopProfile
	err := uc.txRunner.Run(ctx, func(tx repository.Set) error {
		p, err := tx.Profile.Get()
		if err != nil {
			return err
		}
		setTrimmed(&p.Name, in.Name)
		setTrimmed(&p.TaxID, in.TaxID)
		setTrimmed(&p.Phone, in.Phone)
		setTrimmed(&p.Email, in.Email)
		setTrimmed(&p.Address, in.Address)
		if in.Logo != nil {
			p.Logo = *in.Logo
		}
		if err := tx.Profile.Save(p); err != nil {
			return err
		}
		out = p
		return audit.Record(tx.Audit, uc.clock.Now(), actor, entity.ActionProfileUpdated, "",
			"Atualizou o perfil da oficina.")
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Push(entity.NotifySuccess, "Perfil da oficina atualizado.")
	return entityToProfileResponse(out), nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func entityToProfileResponse(p *entity.WorkshopProfile) *dto.ProfileResponse {
	if p == nil {
		return &dto.ProfileResponse{}
	}
	return &dto.ProfileResponse{
		Name:    p.Name,
		TaxID:   p.TaxID,
		Phone:   p.Phone,
		Email:   p.Email,
		Address: p.Address,
		Logo:    p.Logo,
	}
}
