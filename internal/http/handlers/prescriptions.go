package handlers

import (
	"net/http"

	"emoticare/internal/domain"
)

// PrescriptionsAnalyze extracts structured medication data from a photo of a
// prescription.
func (a *App) PrescriptionsAnalyze(w http.ResponseWriter, r *http.Request) {
	image, mime, err := readImageFile(r, "prescription_image")
	if err != nil {
		a.failure(w, r, err)
		return
	}
	req := domain.PrescriptionRequest{
		Image:           image,
		ImageMIME:       mime,
		PatientID:       r.FormValue("patient_id"),
		AdditionalNotes: r.FormValue("additional_notes"),
	}

	p, err := a.Builder.Prescription(req)
	if err != nil {
		a.failure(w, r, err)
		return
	}
	text, err := a.Gemini.GenerateText(r.Context(), p)
	if err != nil {
		a.failure(w, r, err)
		return
	}

	list := a.PrescriptionParser.Parse(text)
	a.json(w, http.StatusOK, a.Assembler.Prescription(req, list))
}
