package repository

import (
	"context"

	"doctor-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorRepository is the record store capability for doctors.
// Find* methods return (nil, nil) when nothing matches.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Doctor, error)
	Update(ctx context.Context, doctor *entity.Doctor) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	// Search returns the doctors matching every constraint in criteria, each
	// with all appointments referencing it. Order is the store's natural order.
	Search(ctx context.Context, criteria entity.DoctorSearchCriteria) ([]entity.Doctor, error)
}
