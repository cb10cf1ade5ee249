package repository

import (
	"context"

	"health-consultancy-api/internal/domain/entity"
)

type DoctorRepository interface {
	FindByID(ctx context.Context, id int) (*entity.Doctor, error)
	FindAll(ctx context.Context) ([]entity.Doctor, error)
}
