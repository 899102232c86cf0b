package converter

import (
	"time"

	"doctor-booking/internal/delivery/dto"
	"doctor-booking/internal/domain/entity"
)

func addressToResponse(address entity.Address) dto.AddressResponse {
	return dto.AddressResponse{
		City:    address.City,
		Country: address.Country,
		Region:  address.Region,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(entity.DateLayout)
	return &s
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:               doctor.ID,
		Name:             doctor.Name,
		Phone:            doctor.Phone,
		Email:            doctor.Email,
		About:            doctor.About,
		Specialization:   doctor.Specialization,
		Address:          addressToResponse(doctor.Address),
		Image:            doctor.Image,
		Gender:           doctor.Gender,
		Birthdate:        formatDate(doctor.Birthdate),
		IsDoctor:         doctor.IsDoctor,
		Rating:           doctor.Rating,
		NumberOfVisitors: doctor.NumberOfVisitors,
		Clinic:           doctor.Clinic,
		Fees:             doctor.Fees,
		WaitingTime:      doctor.WaitingTime,
		ContactInfo:      doctor.ContactInfo,
		CreatedAt:        doctor.CreatedAt,
		UpdatedAt:        doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorToSearchResult projects a doctor and its joined appointments onto the public search shape.
// Appointments is always a non-nil slice.
func DoctorToSearchResult(doctor *entity.Doctor) dto.DoctorSearchResult {
	return dto.DoctorSearchResult{
		ID:               doctor.ID,
		Name:             doctor.Name,
		Phone:            doctor.Phone,
		Email:            doctor.Email,
		Address:          addressToResponse(doctor.Address),
		Image:            doctor.Image,
		Gender:           doctor.Gender,
		Birthdate:        formatDate(doctor.Birthdate),
		IsDoctor:         doctor.IsDoctor,
		Specialization:   doctor.Specialization,
		Rating:           doctor.Rating,
		NumberOfVisitors: doctor.NumberOfVisitors,
		Clinic:           doctor.Clinic,
		Fees:             doctor.Fees,
		WaitingTime:      doctor.WaitingTime,
		ContactInfo:      doctor.ContactInfo,
		Appointments:     AppointmentsToResponses(doctor.Appointments),
	}
}

// DoctorsToSearchResults never returns nil, so an empty result encodes as []
func DoctorsToSearchResults(doctors []entity.Doctor) []dto.DoctorSearchResult {
	results := make([]dto.DoctorSearchResult, len(doctors))
	for i := range doctors {
		results[i] = DoctorToSearchResult(&doctors[i])
	}
	return results
}
