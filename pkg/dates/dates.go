// Package dates holds the two date rules the patient records carry:
// birth-date plausibility and the dd/mm/yyyy display format used for
// insurance policy end dates at the API boundary.
package dates

import (
	"errors"
	"regexp"
	"time"
)

const (
	// BirthDateLayout is the wire format for dates of birth.
	BirthDateLayout = "2006-01-02"

	// DisplayDateLayout is the boundary format for insurance end dates.
	// Internally they are stored as plain date values.
	DisplayDateLayout = "02/01/2006"

	// MaxAgeYears is the highest plausible age at validation time.
	MaxAgeYears = 150
)

var (
	ErrBirthDateInFuture = errors.New("date of birth cannot be in the future")
	ErrAgeImplausible    = errors.New("age cannot be greater than 150 years")
	ErrBadDisplayDate    = errors.New("invalid date format, use dd/mm/yyyy")

	displayDateRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
)

// ParseBirthDate parses an ISO yyyy-mm-dd date of birth.
func ParseBirthDate(s string) (time.Time, error) {
	return time.Parse(BirthDateLayout, s)
}

// ValidateBirthDate rejects birth dates after now and ages above MaxAgeYears.
func ValidateBirthDate(dob, now time.Time) error {
	if dob.After(now) {
		return ErrBirthDateInFuture
	}
	if AgeInYears(dob, now) > MaxAgeYears {
		return ErrAgeImplausible
	}
	return nil
}

// AgeInYears returns the elapsed whole years between dob and now.
func AgeInYears(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	anniversary := dob.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// ParseDisplayDate parses a strict dd/mm/yyyy string. Both the regex and
// Go's parser must accept it, so "2025-12-31", "3/1/2025" and "31/02/2025"
// all fail.
func ParseDisplayDate(s string) (time.Time, error) {
	if !displayDateRegex.MatchString(s) {
		return time.Time{}, ErrBadDisplayDate
	}
	t, err := time.Parse(DisplayDateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadDisplayDate
	}
	return t, nil
}

// FormatDisplayDate renders a date value back to dd/mm/yyyy.
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}
