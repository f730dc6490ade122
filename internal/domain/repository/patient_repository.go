package repository

import (
	"context"

	"patient-records-service/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientRepository is the persistence gateway for patient records.
// Implementations return (nil, nil) when a lookup resolves nothing.
type PatientRepository interface {
	// NextPatientNumber draws the next value from the patient number
	// sequence. Each call consumes a value, concurrent callers never
	// observe the same one.
	NextPatientNumber(ctx context.Context) (int64, error)

	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)

	// FindByNationalID looks up a patient by national id, excluding
	// excludeID when non-nil (used to let a patient keep its own value).
	FindByNationalID(ctx context.Context, nationalID string, excludeID *uuid.UUID) (*entity.Patient, error)

	// Search returns one page of matching patients plus the total match
	// count across all pages.
	Search(ctx context.Context, filter *entity.PatientFilter) ([]entity.Patient, int64, error)

	Update(ctx context.Context, patient *entity.Patient) error

	// SetEmergencyContact replaces the embedded contact wholesale;
	// nil removes it (column becomes NULL, i.e. absent).
	SetEmergencyContact(ctx context.Context, id uuid.UUID, contact *entity.EmergencyContact) error

	// SetInsurancePolicy replaces the embedded policy wholesale;
	// nil removes it.
	SetInsurancePolicy(ctx context.Context, id uuid.UUID, policy *entity.InsurancePolicy) error
}
