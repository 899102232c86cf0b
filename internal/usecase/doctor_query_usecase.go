package usecase

import (
	"context"

	"doctor-booking/internal/converter"
	"doctor-booking/internal/delivery/dto"
	"doctor-booking/internal/domain/entity"
	"doctor-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// DoctorQueryUsecase answers doctor searches. It holds no state besides the
// injected store, so concurrent calls are independent.
type DoctorQueryUsecase interface {
	Search(ctx context.Context, criteria entity.DoctorSearchCriteria) ([]dto.DoctorSearchResult, error)
}

type doctorQueryUsecase struct {
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
}

func NewDoctorQueryUsecase(log *logrus.Logger, doctorRepo repository.DoctorRepository) DoctorQueryUsecase {
	return &doctorQueryUsecase{
		log:        log,
		doctorRepo: doctorRepo,
	}
}

// Search returns every doctor matching all present constraints, each with its
// appointments. An empty match is an empty, non-nil slice.
func (u *doctorQueryUsecase) Search(ctx context.Context, criteria entity.DoctorSearchCriteria) ([]dto.DoctorSearchResult, error) {
	if criteria.IsEmpty() {
		u.log.Debug("Searching doctors without constraints")
	}

	doctors, err := u.doctorRepo.Search(ctx, criteria)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToSearchResults(doctors), nil
}
