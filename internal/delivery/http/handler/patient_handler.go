package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"patient-records-service/internal/delivery/dto"
	"patient-records-service/internal/usecase"
	"patient-records-service/pkg/dates"
	"patient-records-service/pkg/response"
	"patient-records-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	result, err := h.patientUsecase.List(r.Context(), query.Get("search"), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", result.Patients, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.patientID(w, r)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.patientID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) ReplaceEmergencyContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.patientID(w, r)
	if !ok {
		return
	}

	var req dto.EmergencyContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.ReplaceEmergencyContact(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update emergency contact")
		return
	}

	response.Success(w, http.StatusOK, "Emergency contact updated successfully", patient)
}

func (h *PatientHandler) DeleteEmergencyContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.patientID(w, r)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.DeleteEmergencyContact(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to delete emergency contact")
		return
	}

	response.Success(w, http.StatusOK, "Emergency contact deleted successfully", patient)
}

func (h *PatientHandler) ReplaceInsurancePolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.patientID(w, r)
	if !ok {
		return
	}

	var req dto.InsurancePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.ReplaceInsurancePolicy(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update insurance policy")
		return
	}

	response.Success(w, http.StatusOK, "Insurance policy updated successfully", patient)
}

func (h *PatientHandler) DeleteInsurancePolicy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.patientID(w, r)
	if !ok {
		return
	}

	patient, err := h.patientUsecase.DeleteInsurancePolicy(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to delete insurance policy")
		return
	}

	response.Success(w, http.StatusOK, "Insurance policy deleted successfully", patient)
}

// patientID extracts the path id. A malformed id resolves no patient, so it
// is reported as not found rather than as a distinct error.
func (h *PatientHandler) patientID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.NotFound(w, "Patient not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *PatientHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrNationalIDExists:
		response.Conflict(w, err.Error())
	case usecase.ErrInvalidDateOfBirth,
		dates.ErrBirthDateInFuture,
		dates.ErrAgeImplausible,
		dates.ErrBadDisplayDate:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
