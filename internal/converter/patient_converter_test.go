package converter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"patient-records-service/internal/domain/entity"

	"github.com/google/uuid"
)

func TestPatientToResponse_ShapesInsuranceEndDate(t *testing.T) {
	patient := &entity.Patient{
		ID:            uuid.New(),
		PatientNumber: "PAT-00000001",
		FirstName:     "Juan",
		LastName:      "Pérez",
		DateOfBirth:   time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		Gender:        entity.GenderMasculino,
		Phone:         "5551234567",
		InsurancePolicy: &entity.InsurancePolicy{
			Provider:     "Seguro Nacional",
			PolicyNumber: "POL-123456",
			EndDate:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	resp := PatientToResponse(patient)
	if resp.InsurancePolicy == nil {
		t.Fatal("expected insurance policy in response")
	}
	if resp.InsurancePolicy.EndDate != "31/12/2025" {
		t.Errorf("end date = %q, want %q", resp.InsurancePolicy.EndDate, "31/12/2025")
	}
	if resp.DateOfBirth != "1990-05-15" {
		t.Errorf("date of birth = %q, want %q", resp.DateOfBirth, "1990-05-15")
	}

	// The internal date representation must never leak to callers.
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(raw), "2025-12-31") {
		t.Errorf("internal end date leaked into response: %s", raw)
	}
}

func TestPatientToResponse_OmitsAbsentFields(t *testing.T) {
	patient := &entity.Patient{
		ID:            uuid.New(),
		PatientNumber: "PAT-00000002",
		FirstName:     "Ana",
		LastName:      "López",
		DateOfBirth:   time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC),
		Gender:        entity.GenderFemenino,
		Phone:         "5550000000",
	}

	resp := PatientToResponse(patient)
	if resp.NationalID != "" {
		t.Errorf("expected empty national id, got %q", resp.NationalID)
	}
	if resp.EmergencyContact != nil || resp.InsurancePolicy != nil {
		t.Error("expected absent sub-records to stay absent")
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, field := range []string{"national_id", "emergency_contact", "insurance_policy", "email"} {
		if strings.Contains(string(raw), field) {
			t.Errorf("expected %s to be omitted from response: %s", field, raw)
		}
	}
}

func TestPatientToResponse_Nil(t *testing.T) {
	if PatientToResponse(nil) != nil {
		t.Error("expected nil response for nil patient")
	}
}

func TestPatientsToResponses(t *testing.T) {
	patients := []entity.Patient{
		{ID: uuid.New(), PatientNumber: "PAT-00000001"},
		{ID: uuid.New(), PatientNumber: "PAT-00000002"},
	}

	responses := PatientsToResponses(patients)
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	if responses[0].PatientNumber != "PAT-00000001" || responses[1].PatientNumber != "PAT-00000002" {
		t.Error("responses out of order")
	}

	if got := PatientsToResponses(nil); len(got) != 0 {
		t.Errorf("expected empty slice for nil input, got %d", len(got))
	}
}
