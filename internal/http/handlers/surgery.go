package handlers

import (
	"encoding/json"
	"net/http"

	"emoticare/internal/domain"
)

// SurgerySimulate builds a step-by-step surgery walkthrough from a patient
// profile.
func (a *App) SurgerySimulate(w http.ResponseWriter, r *http.Request) {
	var req domain.SurgeryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation", "invalid JSON payload")
		return
	}

	p, err := a.Builder.Surgery(req)
	if err != nil {
		a.failure(w, r, err)
		return
	}
	text, err := a.Gemini.GenerateText(r.Context(), p)
	if err != nil {
		a.failure(w, r, err)
		return
	}

	script := a.SurgeryParser.Parse(text)
	a.json(w, http.StatusOK, a.Assembler.Surgery(req, script))
}
