package converter

import (
	"patient-records-service/internal/delivery/dto"
	"patient-records-service/internal/domain/entity"
	"patient-records-service/pkg/dates"
)

// PatientToResponse converts a Patient entity to its response DTO. This is
// the single place where the stored insurance end date is rendered back to
// dd/mm/yyyy; the internal date value never reaches callers.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	resp := &dto.PatientResponse{
		ID:            patient.ID,
		PatientNumber: patient.PatientNumber,
		FirstName:     patient.FirstName,
		LastName:      patient.LastName,
		DateOfBirth:   patient.DateOfBirth.Format(dates.BirthDateLayout),
		Gender:        patient.Gender,
		Phone:         patient.Phone,
		Email:         patient.Email,
		CreatedAt:     patient.CreatedAt,
		UpdatedAt:     patient.UpdatedAt,
	}

	if patient.NationalID != nil {
		resp.NationalID = *patient.NationalID
	}

	if patient.EmergencyContact != nil {
		resp.EmergencyContact = &dto.EmergencyContactResponse{
			Name:         patient.EmergencyContact.Name,
			Relationship: patient.EmergencyContact.Relationship,
			Phone:        patient.EmergencyContact.Phone,
		}
	}

	if patient.InsurancePolicy != nil {
		resp.InsurancePolicy = &dto.InsurancePolicyResponse{
			Provider:     patient.InsurancePolicy.Provider,
			PolicyNumber: patient.InsurancePolicy.PolicyNumber,
			EndDate:      dates.FormatDisplayDate(patient.InsurancePolicy.EndDate),
		}
	}

	return resp
}

// PatientsToResponses converts a page of patients for list responses.
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		responses = append(responses, *PatientToResponse(&patients[i]))
	}
	return responses
}
