package repository

import (
	"context"
	"errors"
	"strings"

	"patient-records-service/internal/domain/entity"
	domainRepo "patient-records-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) NextPatientNumber(ctx context.Context) (int64, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('patient_number_seq')").Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByNationalID(ctx context.Context, nationalID string, excludeID *uuid.UUID) (*entity.Patient, error) {
	query := r.db.WithContext(ctx).Where("national_id = ?", nationalID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var patient entity.Patient
	err := query.First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Search(ctx context.Context, filter *entity.PatientFilter) ([]entity.Patient, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Patient{})

	if filter.Search != "" {
		pattern := "%" + escapeLikePattern(filter.Search) + "%"
		query = query.Where(
			"patient_number ILIKE ? OR national_id ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []entity.Patient
	err := query.
		Order("created_at ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&patients).Error
	if err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) SetEmergencyContact(ctx context.Context, id uuid.UUID, contact *entity.EmergencyContact) error {
	// A typed nil pointer would still hit the Valuer; pass untyped nil to unset.
	var value interface{}
	if contact != nil {
		value = contact
	}
	return r.db.WithContext(ctx).
		Model(&entity.Patient{}).
		Where("id = ?", id).
		Update("emergency_contact", value).Error
}

func (r *patientRepository) SetInsurancePolicy(ctx context.Context, id uuid.UUID, policy *entity.InsurancePolicy) error {
	var value interface{}
	if policy != nil {
		value = policy
	}
	return r.db.WithContext(ctx).
		Model(&entity.Patient{}).
		Where("id = ?", id).
		Update("insurance_policy", value).Error
}

// escapeLikePattern escapes LIKE wildcards in a user-supplied search term so
// it matches as a literal substring.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
