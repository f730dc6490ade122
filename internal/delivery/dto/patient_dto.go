package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type EmergencyContactRequest struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
	Phone        string `json:"phone" validate:"required,phone10"`
}

type InsurancePolicyRequest struct {
	Provider     string `json:"provider" validate:"required"`
	PolicyNumber string `json:"policy_number" validate:"required"`
	EndDate      string `json:"end_date" validate:"required,ddmmyyyy"` // Format: dd/mm/yyyy
}

type CreatePatientRequest struct {
	NationalID       string                   `json:"national_id" validate:"omitempty"`
	FirstName        string                   `json:"first_name" validate:"required"`
	LastName         string                   `json:"last_name" validate:"required"`
	DateOfBirth      string                   `json:"date_of_birth" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	Gender           string                   `json:"gender" validate:"required,oneof=masculino femenino otro"`
	Phone            string                   `json:"phone" validate:"required,phone10"`
	Email            string                   `json:"email" validate:"omitempty,email"`
	EmergencyContact *EmergencyContactRequest `json:"emergency_contact" validate:"omitempty"`
	InsurancePolicy  *InsurancePolicyRequest  `json:"insurance_policy" validate:"omitempty"`
}

// UpdatePatientRequest is an explicit patch: only non-nil fields are applied.
// The two embedded sub-records have no fields here on purpose, they are only
// mutable through their dedicated endpoints.
type UpdatePatientRequest struct {
	NationalID  *string `json:"national_id" validate:"omitempty"`
	FirstName   *string `json:"first_name" validate:"omitempty,min=1"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"` // Format: YYYY-MM-DD
	Gender      *string `json:"gender" validate:"omitempty,oneof=masculino femenino otro"`
	Phone       *string `json:"phone" validate:"omitempty,phone10"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

// Response DTOs

type EmergencyContactResponse struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type InsurancePolicyResponse struct {
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
	EndDate      string `json:"end_date"` // Format: dd/mm/yyyy
}

// PatientListResponse is one page of search results plus pagination data.
type PatientListResponse struct {
	Patients   []PatientResponse `json:"patients"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
}

type PatientResponse struct {
	ID               uuid.UUID                 `json:"id"`
	PatientNumber    string                    `json:"patient_number"`
	NationalID       string                    `json:"national_id,omitempty"`
	FirstName        string                    `json:"first_name"`
	LastName         string                    `json:"last_name"`
	DateOfBirth      string                    `json:"date_of_birth"`
	Gender           string                    `json:"gender"`
	Phone            string                    `json:"phone"`
	Email            string                    `json:"email,omitempty"`
	EmergencyContact *EmergencyContactResponse `json:"emergency_contact,omitempty"`
	InsurancePolicy  *InsurancePolicyResponse  `json:"insurance_policy,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}
