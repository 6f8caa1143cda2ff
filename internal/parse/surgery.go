package parse

import (
	"strings"

	"github.com/rs/zerolog"

	"emoticare/internal/domain"
)

// surgeryFieldsExpected counts the sections a complete simulation carries:
// script, overview, suitability, steps, duration, risks, post-operative care.
const surgeryFieldsExpected = 7

type surgeryPayload struct {
	SurgeryScript      string  `json:"surgery_script"`
	Overview           string  `json:"overview"`
	PatientSuitability string  `json:"patient_suitability"`
	ProcedureSteps     []struct {
		StepNumber      int    `json:"step_number"`
		Title           string `json:"title"`
		Description     string `json:"description"`
		DurationMinutes int    `json:"duration_minutes"`
	} `json:"procedure_steps"`
	EstimatedDuration int      `json:"estimated_duration"`
	RiskFactors       []string `json:"risk_factors"`
	PostOperativeCare []string `json:"post_operative_care"`
	SuccessRate       float64  `json:"success_rate"`
}

// SurgeryParser extracts a simulation report from surgery-consultant output.
type SurgeryParser struct {
	logger zerolog.Logger
}

func NewSurgeryParser(logger *zerolog.Logger) *SurgeryParser {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &SurgeryParser{logger: l}
}

func (p *SurgeryParser) Parse(text string) *domain.SurgeryScript {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return placeholderSurgery()
	}

	if payload, ok := decodePayload[surgeryPayload](trimmed); ok {
		if script := fromSurgeryPayload(payload); script.Confidence > 0 {
			return script
		}
	}

	p.logger.Debug().
		Bool("refusal_hint", looksLikeRefusal(trimmed)).
		Msg("parse: surgery reply not structured; degrading to overview-only result")

	// Unstructured prose still makes a usable overview.
	script := placeholderSurgery()
	script.Overview = truncate(trimmed, 500)
	script.Confidence = clamp01(1.0 / surgeryFieldsExpected)
	script.Parsed = true
	return script
}

func fromSurgeryPayload(payload surgeryPayload) *domain.SurgeryScript {
	script := &domain.SurgeryScript{
		Script:             strings.TrimSpace(payload.SurgeryScript),
		Overview:           strings.TrimSpace(payload.Overview),
		PatientSuitability: strings.TrimSpace(payload.PatientSuitability),
		EstimatedDuration:  payload.EstimatedDuration,
		RiskFactors:        []string{},
		PostOperativeCare:  []string{},
		SuccessRate:        payload.SuccessRate,
	}
	for _, step := range payload.ProcedureSteps {
		if strings.TrimSpace(step.Title) == "" && strings.TrimSpace(step.Description) == "" {
			continue
		}
		script.ProcedureSteps = append(script.ProcedureSteps, domain.SurgeryStep{
			StepNumber:      step.StepNumber,
			Title:           strings.TrimSpace(step.Title),
			Description:     strings.TrimSpace(step.Description),
			DurationMinutes: step.DurationMinutes,
		})
	}
	for _, risk := range payload.RiskFactors {
		if risk = strings.TrimSpace(risk); risk != "" {
			script.RiskFactors = append(script.RiskFactors, risk)
		}
	}
	for _, care := range payload.PostOperativeCare {
		if care = strings.TrimSpace(care); care != "" {
			script.PostOperativeCare = append(script.PostOperativeCare, care)
		}
	}

	found := 0
	if script.Script != "" {
		found++
	}
	if script.Overview != "" {
		found++
	}
	if script.PatientSuitability != "" {
		found++
	}
	if len(script.ProcedureSteps) > 0 {
		found++
	}
	if script.EstimatedDuration > 0 {
		found++
	}
	if len(script.RiskFactors) > 0 {
		found++
	}
	if len(script.PostOperativeCare) > 0 {
		found++
	}
	script.Confidence = clamp01(float64(found) / surgeryFieldsExpected)
	script.Parsed = found > 0
	return script
}

func placeholderSurgery() *domain.SurgeryScript {
	return &domain.SurgeryScript{
		PatientSuitability: "Please consult with a qualified surgeon for a detailed assessment.",
		ProcedureSteps:     []domain.SurgeryStep{},
		RiskFactors:        []string{},
		PostOperativeCare:  []string{},
	}
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

var _ Strategy[*domain.SurgeryScript] = (*SurgeryParser)(nil)
