package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"patient-records-service/internal/converter"
	"patient-records-service/internal/delivery/dto"
	"patient-records-service/internal/domain/entity"
	"patient-records-service/internal/domain/repository"
	"patient-records-service/internal/service"
	"patient-records-service/pkg/dates"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrNationalIDExists   = errors.New("a patient with this national id already exists")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth format, use YYYY-MM-DD")
)

// Pagination bounds for List
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	List(ctx context.Context, search string, page, limit int) (*dto.PatientListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	ReplaceEmergencyContact(ctx context.Context, id uuid.UUID, req *dto.EmergencyContactRequest) (*dto.PatientResponse, error)
	DeleteEmergencyContact(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	ReplaceInsurancePolicy(ctx context.Context, id uuid.UUID, req *dto.InsurancePolicyRequest) (*dto.PatientResponse, error)
	DeleteInsurancePolicy(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	cache       service.PatientCache // optional, nil when redis is not configured
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	cache service.PatientCache,
) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
		cache:       cache,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := dates.ParseBirthDate(req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateOfBirth
	}
	if err := dates.ValidateBirthDate(dob, time.Now()); err != nil {
		return nil, err
	}

	// Advisory pre-check; the sparse unique index is the authoritative guard.
	if req.NationalID != "" {
		existing, err := u.patientRepo.FindByNationalID(ctx, req.NationalID, nil)
		if err != nil {
			u.log.Warnf("Failed to check national id: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrNationalIDExists
		}
	}

	seq, err := u.patientRepo.NextPatientNumber(ctx)
	if err != nil {
		u.log.Warnf("Failed to draw patient number: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		PatientNumber: entity.FormatPatientNumber(seq),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   dob,
		Gender:        req.Gender,
		Phone:         req.Phone,
		Email:         req.Email,
	}
	if req.NationalID != "" {
		nationalID := req.NationalID
		patient.NationalID = &nationalID
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = &entity.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Relationship: req.EmergencyContact.Relationship,
			Phone:        req.EmergencyContact.Phone,
		}
	}
	if req.InsurancePolicy != nil {
		endDate, err := dates.ParseDisplayDate(req.InsurancePolicy.EndDate)
		if err != nil {
			return nil, err
		}
		patient.InsurancePolicy = &entity.InsurancePolicy{
			Provider:     req.InsurancePolicy.Provider,
			PolicyNumber: req.InsurancePolicy.PolicyNumber,
			EndDate:      endDate,
		}
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		if isDuplicateKeyError(err, "national_id") {
			return nil, ErrNationalIDExists
		}
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context, search string, page, limit int) (*dto.PatientListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	filter := &entity.PatientFilter{
		Search: strings.TrimSpace(search),
		Page:   page,
		Limit:  limit,
	}

	patients, total, err := u.patientRepo.Search(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &dto.PatientListResponse{
		Patients:   converter.PatientsToResponses(patients),
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	if u.cache != nil {
		if cached := u.cache.Get(ctx, id); cached != nil {
			return cached, nil
		}
	}

	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	resp := converter.PatientToResponse(patient)
	if u.cache != nil {
		u.cache.Set(ctx, resp)
	}
	return resp, nil
}

func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.DateOfBirth != nil {
		dob, err := dates.ParseBirthDate(*req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateOfBirth
		}
		if err := dates.ValidateBirthDate(dob, time.Now()); err != nil {
			return nil, err
		}
		patient.DateOfBirth = dob
	}

	if req.NationalID != nil && *req.NationalID != "" {
		existing, err := u.patientRepo.FindByNationalID(ctx, *req.NationalID, &id)
		if err != nil {
			u.log.Warnf("Failed to check national id: %+v", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrNationalIDExists
		}
		nationalID := *req.NationalID
		patient.NationalID = &nationalID
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		if isDuplicateKeyError(err, "national_id") {
			return nil, ErrNationalIDExists
		}
		return nil, err
	}

	u.invalidateCache(ctx, id)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ReplaceEmergencyContact(ctx context.Context, id uuid.UUID, req *dto.EmergencyContactRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	contact := &entity.EmergencyContact{
		Name:         req.Name,
		Relationship: req.Relationship,
		Phone:        req.Phone,
	}
	if err := u.patientRepo.SetEmergencyContact(ctx, id, contact); err != nil {
		u.log.Warnf("Failed to replace emergency contact: %+v", err)
		return nil, err
	}

	patient.EmergencyContact = contact
	u.invalidateCache(ctx, id)
	return converter.PatientToResponse(patient), nil
}

// DeleteEmergencyContact removes the embedded contact. Deleting an already
// absent contact succeeds, only a missing patient is an error.
func (u *patientUsecase) DeleteEmergencyContact(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.patientRepo.SetEmergencyContact(ctx, id, nil); err != nil {
		u.log.Warnf("Failed to delete emergency contact: %+v", err)
		return nil, err
	}

	patient.EmergencyContact = nil
	u.invalidateCache(ctx, id)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ReplaceInsurancePolicy(ctx context.Context, id uuid.UUID, req *dto.InsurancePolicyRequest) (*dto.PatientResponse, error) {
	endDate, err := dates.ParseDisplayDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	policy := &entity.InsurancePolicy{
		Provider:     req.Provider,
		PolicyNumber: req.PolicyNumber,
		EndDate:      endDate,
	}
	if err := u.patientRepo.SetInsurancePolicy(ctx, id, policy); err != nil {
		u.log.Warnf("Failed to replace insurance policy: %+v", err)
		return nil, err
	}

	patient.InsurancePolicy = policy
	u.invalidateCache(ctx, id)
	return converter.PatientToResponse(patient), nil
}

// DeleteInsurancePolicy removes the embedded policy; idempotent like
// DeleteEmergencyContact.
func (u *patientUsecase) DeleteInsurancePolicy(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.patientRepo.SetInsurancePolicy(ctx, id, nil); err != nil {
		u.log.Warnf("Failed to delete insurance policy: %+v", err)
		return nil, err
	}

	patient.InsurancePolicy = nil
	u.invalidateCache(ctx, id)
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) invalidateCache(ctx context.Context, id uuid.UUID) {
	if u.cache != nil {
		u.cache.Invalidate(ctx, id)
	}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
