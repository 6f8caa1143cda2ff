package handlers

import (
	"net/http"
	"strconv"

	"emoticare/internal/domain"
)

// WoundsAnalyze assesses the healing of a post-surgical wound photo.
func (a *App) WoundsAnalyze(w http.ResponseWriter, r *http.Request) {
	image, mime, err := readImageFile(r, "file")
	if err != nil {
		a.failure(w, r, err)
		return
	}

	days := 0
	if raw := r.FormValue("days_post_surgery"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			a.error(w, http.StatusBadRequest, "validation", "days_post_surgery: must be an integer")
			return
		}
	}
	req := domain.WoundRequest{
		Image:           image,
		ImageMIME:       mime,
		PatientID:       r.FormValue("patient_id"),
		WoundLocation:   r.FormValue("wound_location"),
		DaysPostSurgery: days,
		AdditionalNotes: r.FormValue("additional_notes"),
	}

	p, err := a.Builder.Wound(req)
	if err != nil {
		a.failure(w, r, err)
		return
	}
	text, err := a.Gemini.GenerateText(r.Context(), p)
	if err != nil {
		a.failure(w, r, err)
		return
	}

	assessment := a.WoundParser.Parse(text)
	a.json(w, http.StatusOK, a.Assembler.Wound(req, assessment))
}
