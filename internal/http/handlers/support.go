package handlers

import (
	"encoding/json"
	"net/http"

	"emoticare/internal/domain"
	"emoticare/internal/middleware"
)

// Support generates an empathetic reply for a patient message. A reply is
// always returned on generation success; if the model output cannot be
// structured, the response degrades to confidence zero instead of erroring.
func (a *App) Support(w http.ResponseWriter, r *http.Request) {
	var req domain.SupportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "validation", "invalid JSON payload")
		return
	}

	p, err := a.Builder.Support(req)
	if err != nil {
		a.failure(w, r, err)
		return
	}
	text, err := a.Gemini.GenerateText(r.Context(), p)
	if err != nil {
		a.failure(w, r, err)
		return
	}

	advice := a.SupportParser.Parse(text)
	country := middleware.CountryFromContext(r.Context())
	a.json(w, http.StatusOK, a.Assembler.Support(req, advice, country))
}
