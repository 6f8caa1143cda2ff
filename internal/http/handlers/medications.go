package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"emoticare/internal/domain"
)

type medicationCreateRequest struct {
	PatientID    string `json:"patient_id"`
	Name         string `json:"medication_name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

func (r medicationCreateRequest) validate() error {
	switch {
	case r.PatientID == "":
		return domain.NewValidationError("patient_id", "is required")
	case r.Name == "":
		return domain.NewValidationError("medication_name", "is required")
	case r.Dosage == "":
		return domain.NewValidationError("dosage", "is required")
	case r.Frequency == "":
		return domain.NewValidationError("frequency", "is required")
	}
	return nil
}

func (a *App) MedicationsCreate(w http.ResponseWriter, r *http.Request) {
	var req medicationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation", "invalid JSON payload")
		return
	}
	if err := req.validate(); err != nil {
		a.failure(w, r, err)
		return
	}

	rec := domain.MedicationRecord{
		PatientID:    req.PatientID,
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Duration:     req.Duration,
		Instructions: req.Instructions,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
	if err := a.Medications.Create(r.Context(), &rec); err != nil {
		a.failure(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, rec)
}

func (a *App) MedicationsGet(w http.ResponseWriter, r *http.Request) {
	rec, err := a.Medications.GetByID(r.Context(), chi.URLParam(r, "medication_id"))
	if err != nil {
		a.failure(w, r, err)
		return
	}
	a.json(w, http.StatusOK, rec)
}

func (a *App) MedicationsListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patient_id")
	if patientID == "" {
		a.error(w, http.StatusBadRequest, "validation", "patient_id: is required")
		return
	}
	records, err := a.Medications.ListByPatient(r.Context(), patientID)
	if err != nil {
		a.failure(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"patient_id":  patientID,
		"medications": records,
	})
}

func (a *App) MedicationsUpdate(w http.ResponseWriter, r *http.Request) {
	var upd domain.MedicationUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		a.error(w, http.StatusBadRequest, "validation", "invalid JSON payload")
		return
	}
	id := chi.URLParam(r, "medication_id")
	if err := a.Medications.Update(r.Context(), id, upd); err != nil {
		a.failure(w, r, err)
		return
	}
	rec, err := a.Medications.GetByID(r.Context(), id)
	if err != nil {
		a.failure(w, r, err)
		return
	}
	a.json(w, http.StatusOK, rec)
}

func (a *App) MedicationsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Medications.Delete(r.Context(), chi.URLParam(r, "medication_id")); err != nil {
		a.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
