package repository

import (
	"context"
	"errors"

	"doctor-booking/internal/domain/entity"
	domainRepo "doctor-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(doctor).Error
	return translateError(err)
}

func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := r.db.WithContext(ctx).Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// Update saves profile fields. The password only changes through UpdatePassword.
func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations, "Password", "CreatedAt").Save(doctor).Error
	return translateError(err)
}

func (r *doctorRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Doctor{}).
		Where("id = ?", id).
		Update("password", hashedPassword)
	return result.RowsAffected, result.Error
}

// Delete removes the doctor together with the appointment slots referencing it
func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&entity.Appointment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entity.Doctor{})
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// Search filters doctors by the supplied criteria and preloads their appointments (left join by doctor_id).
// The password column is never selected.
func (r *doctorRepository) Search(ctx context.Context, criteria entity.DoctorSearchCriteria) ([]entity.Doctor, error) {
	query := r.db.WithContext(ctx).Model(&entity.Doctor{}).Omit("password")

	if specialization, ok := criteria.Specialization(); ok {
		query = query.Where("specialization = ?", specialization)
	}
	if city, ok := criteria.City(); ok {
		query = query.Where("address_city = ?", city)
	}
	if nameQuery, ok := criteria.NameQuery(); ok {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, containsPattern(nameQuery))
	}

	var doctors []entity.Doctor
	err := query.
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, start_time ASC")
		}).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
