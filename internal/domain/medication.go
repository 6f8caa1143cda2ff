package domain

import "time"

// MedicationRecord is a stored medication entry for a patient. Unlike the
// per-request orchestration types, records persist in Postgres.
type MedicationRecord struct {
	ID           string    `json:"id"`
	PatientID    string    `json:"patient_id"`
	Name         string    `json:"medication_name"`
	Dosage       string    `json:"dosage"`
	Frequency    string    `json:"frequency"`
	Duration     string    `json:"duration,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	StartDate    string    `json:"start_date,omitempty"`
	EndDate      string    `json:"end_date,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MedicationUpdate holds the mutable fields of a record; nil pointers are
// left unchanged.
type MedicationUpdate struct {
	Name         *string `json:"medication_name,omitempty"`
	Dosage       *string `json:"dosage,omitempty"`
	Frequency    *string `json:"frequency,omitempty"`
	Duration     *string `json:"duration,omitempty"`
	Instructions *string `json:"instructions,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
