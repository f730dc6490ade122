package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Patient is the root record identifying a person receiving care.
type Patient struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"patient_number"`
	NationalID    *string   `gorm:"type:varchar(50);uniqueIndex" json:"national_id,omitempty"`
	FirstName     string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(255);not null" json:"last_name"`
	DateOfBirth   time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender        string    `gorm:"type:varchar(10);not null" json:"gender"`
	Phone         string    `gorm:"type:char(10);not null" json:"phone"`
	Email         string    `gorm:"type:varchar(255)" json:"email,omitempty"`

	// Embedded sub-records; nil means absent, replaced wholesale only.
	EmergencyContact *EmergencyContact `gorm:"type:jsonb" json:"emergency_contact,omitempty"`
	InsurancePolicy  *InsurancePolicy  `gorm:"type:jsonb" json:"insurance_policy,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender values
const (
	GenderMasculino = "masculino"
	GenderFemenino  = "femenino"
	GenderOtro      = "otro"
)

// PatientNumberPrefix plus an 8-digit zero-padded sequence forms the
// human-readable patient identifier, e.g. PAT-00000001. Assigned once at
// creation, never recomputed.
const PatientNumberPrefix = "PAT-"

// FormatPatientNumber renders a sequence value as a patient number.
func FormatPatientNumber(seq int64) string {
	return fmt.Sprintf("%s%08d", PatientNumberPrefix, seq)
}

// EmergencyContact is the single embedded next-of-kin record of a patient.
// It has no identity outside its parent.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Value implements driver.Valuer for JSONB storage
func (c EmergencyContact) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB storage
func (c *EmergencyContact) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// InsurancePolicy is the single embedded coverage record of a patient.
// EndDate is stored as a date value; the dd/mm/yyyy rendering happens at
// the delivery boundary only.
type InsurancePolicy struct {
	Provider     string    `json:"provider"`
	PolicyNumber string    `json:"policy_number"`
	EndDate      time.Time `json:"end_date"`
}

// Value implements driver.Valuer for JSONB storage
func (p InsurancePolicy) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB storage
func (p *InsurancePolicy) Scan(value interface{}) error {
	return scanJSON(value, p)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, dest)
}
