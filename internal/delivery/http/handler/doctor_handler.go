package handler

import (
	"encoding/json"
	"net/http"

	"doctor-booking/internal/delivery/dto"
	"doctor-booking/internal/domain/entity"
	"doctor-booking/internal/usecase"
	"doctor-booking/pkg/response"
	"doctor-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase      usecase.DoctorUsecase
	doctorQueryUsecase usecase.DoctorQueryUsecase
	validator          *validator.CustomValidator
}

func NewDoctorHandler(
	doctorUsecase usecase.DoctorUsecase,
	doctorQueryUsecase usecase.DoctorQueryUsecase,
	validator *validator.CustomValidator,
) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase:      doctorUsecase,
		doctorQueryUsecase: doctorQueryUsecase,
		validator:          validator,
	}
}

// SearchDoctors handles GET /doctors/search?specialization=&city=&doctorOrHospital=
// An empty query parameter places no constraint.
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	criteria := entity.NewDoctorSearchCriteria()
	if specialization := query.Get("specialization"); specialization != "" {
		criteria = criteria.WithSpecialization(specialization)
	}
	if city := query.Get("city"); city != "" {
		criteria = criteria.WithCity(city)
	}
	if name := query.Get("doctorOrHospital"); name != "" {
		criteria = criteria.WithNameQuery(name)
	}

	doctors, err := h.doctorQueryUsecase.Search(r.Context(), criteria)
	if err != nil {
		response.InternalServerError(w, "Failed to search doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorEmailExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrNegativeFees, usecase.ErrInvalidBirthdate, usecase.ErrPasswordTooLong:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseIDParam(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) GetDoctorByEmail(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	doctor, err := h.doctorUsecase.GetDoctorByEmail(r.Context(), email)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseIDParam(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateDoctor(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorEmailExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrNegativeFees, usecase.ErrInvalidBirthdate:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseIDParam(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.doctorUsecase.ChangePassword(r.Context(), doctorID, &req); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidOldPassword:
			response.BadRequest(w, "Old password is incorrect")
		case usecase.ErrPasswordTooLong:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to change password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully", nil)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseIDParam(w, r, "Invalid doctor ID")
	if !ok {
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), doctorID); err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

// parseIDParam reads the {id} route variable, writing a 400 when it is not a UUID
func parseIDParam(w http.ResponseWriter, r *http.Request, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, message)
		return uuid.Nil, false
	}
	return id, true
}
