// Package handlers wires the HTTP surface to the orchestration pipeline.
// Handlers stay thin: decode, delegate, encode. All provider traffic goes
// through the interfaces below so tests can substitute stubs.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"emoticare/internal/assemble"
	"emoticare/internal/domain"
	"emoticare/internal/infra"
	"emoticare/internal/parse"
	"emoticare/internal/prompt"
	"emoticare/internal/providers/heygen"
)

// TextGenerator produces free-form model text for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, p *prompt.Prompt) (string, error)
}

// VideoGenerator starts avatar-video jobs and reports their status.
type VideoGenerator interface {
	Generate(ctx context.Context, req heygen.GenerateRequest) (*domain.VideoJob, error)
	Status(ctx context.Context, videoID string) (*domain.VideoJob, error)
}

// MedicationStore persists patient medication records.
type MedicationStore interface {
	Create(ctx context.Context, rec *domain.MedicationRecord) error
	GetByID(ctx context.Context, id string) (*domain.MedicationRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.MedicationRecord, error)
	Update(ctx context.Context, id string, upd domain.MedicationUpdate) error
	Delete(ctx context.Context, id string) error
}

// Archiver copies a completed video into durable storage.
type Archiver interface {
	Archive(ctx context.Context, videoID, sourceURL string) (string, error)
}

type App struct {
	Logger zerolog.Logger
	Cfg    *infra.Config

	Gemini  TextGenerator
	HeyGen  VideoGenerator
	Builder *prompt.Builder

	SupportParser      *parse.SupportParser
	PrescriptionParser *parse.PrescriptionParser
	SurgeryParser      *parse.SurgeryParser
	WoundParser        *parse.WoundParser

	Assembler *assemble.Assembler

	Medications MedicationStore
	Archiver    Archiver
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error_kind": kind, "message": message})
}

// failure maps pipeline errors onto HTTP statuses.
func (a *App) failure(w http.ResponseWriter, r *http.Request, err error) {
	if v, ok := domain.AsValidation(err); ok {
		a.error(w, http.StatusBadRequest, "validation", v.Error())
		return
	}
	if g, ok := domain.AsGeneration(err); ok {
		code := http.StatusBadGateway
		switch g.Kind {
		case domain.GenerationTimeout:
			code = http.StatusGatewayTimeout
		case domain.GenerationRateLimited:
			code = http.StatusTooManyRequests
		}
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Str("kind", string(g.Kind)).Msg("generation failed")
		a.error(w, code, string(g.Kind), "upstream model request failed")
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	a.error(w, http.StatusInternalServerError, "internal", "internal error")
}
