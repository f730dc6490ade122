package entity

// PatientFilter is a domain-level filter for searching patients.
// Used by repository layer to avoid coupling with delivery DTOs.
type PatientFilter struct {
	Search string // Case-insensitive substring over patient_number, national_id, first_name, last_name
	Page   int    // 1-based
	Limit  int    // Page size, already clamped by the usecase
}

// Offset returns the number of records to skip for the requested page.
func (f *PatientFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
