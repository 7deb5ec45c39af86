package repository

import "github.com/estebancaso/abasto-api/internal/domain/entity"

// ProfileRepository define el puerto de persistencia para Profile.
type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
}
