package parse

import (
	"strings"

	"github.com/rs/zerolog"

	"emoticare/internal/domain"
)

// woundFieldsExpected counts the sections of a complete assessment: healing
// status, infection risk, healing progress, recommendations, warning signs.
const woundFieldsExpected = 5

type woundPayload struct {
	HealingStatus   string   `json:"healing_status"`
	InfectionRisk   string   `json:"infection_risk"`
	HealingProgress string   `json:"healing_progress"`
	Recommendations []string `json:"recommendations"`
	WarningSigns    []string `json:"warning_signs"`
}

// WoundParser extracts a healing assessment from wound-monitoring output.
type WoundParser struct {
	logger zerolog.Logger
}

func NewWoundParser(logger *zerolog.Logger) *WoundParser {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &WoundParser{logger: l}
}

func (p *WoundParser) Parse(text string) *domain.WoundAssessment {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return placeholderWound()
	}

	if payload, ok := decodePayload[woundPayload](trimmed); ok {
		if assessment := fromWoundPayload(payload); assessment.Confidence > 0 {
			return assessment
		}
	}

	if assessment := p.fromLines(trimmed); assessment.Confidence > 0 {
		return assessment
	}

	p.logger.Debug().
		Bool("refusal_hint", looksLikeRefusal(trimmed)).
		Msg("parse: no wound structure recognized")

	return placeholderWound()
}

func fromWoundPayload(payload woundPayload) *domain.WoundAssessment {
	assessment := &domain.WoundAssessment{
		HealingStatus:   strings.TrimSpace(payload.HealingStatus),
		InfectionRisk:   normalizeRisk(payload.InfectionRisk),
		HealingProgress: strings.TrimSpace(payload.HealingProgress),
		Recommendations: []string{},
		WarningSigns:    []string{},
	}
	for _, rec := range payload.Recommendations {
		if rec = strings.TrimSpace(rec); rec != "" {
			assessment.Recommendations = append(assessment.Recommendations, rec)
		}
	}
	for _, sign := range payload.WarningSigns {
		if sign = strings.TrimSpace(sign); sign != "" {
			assessment.WarningSigns = append(assessment.WarningSigns, sign)
		}
	}
	assessment.Confidence = woundConfidence(assessment)
	assessment.Parsed = assessment.Confidence > 0
	return assessment
}

// fromLines scans labeled lines such as "Healing Status: closing well".
func (p *WoundParser) fromLines(text string) *domain.WoundAssessment {
	assessment := placeholderWound()
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}
		switch key {
		case "healing status", "status":
			assessment.HealingStatus = value
		case "infection risk", "risk":
			assessment.InfectionRisk = normalizeRisk(value)
		case "healing progress", "progress":
			assessment.HealingProgress = value
		case "recommendation", "recommendations":
			assessment.Recommendations = append(assessment.Recommendations, value)
		case "warning", "warning signs":
			assessment.WarningSigns = append(assessment.WarningSigns, value)
		}
	}
	assessment.Confidence = woundConfidence(assessment)
	assessment.Parsed = assessment.Confidence > 0
	return assessment
}

func woundConfidence(a *domain.WoundAssessment) float64 {
	found := 0
	if a.HealingStatus != "" {
		found++
	}
	if a.InfectionRisk != "" {
		found++
	}
	if a.HealingProgress != "" {
		found++
	}
	if len(a.Recommendations) > 0 {
		found++
	}
	if len(a.WarningSigns) > 0 {
		found++
	}
	return clamp01(float64(found) / woundFieldsExpected)
}

func normalizeRisk(risk string) string {
	switch strings.ToLower(strings.TrimSpace(risk)) {
	case "low":
		return "low"
	case "moderate", "medium":
		return "moderate"
	case "high":
		return "high"
	default:
		return strings.ToLower(strings.TrimSpace(risk))
	}
}

func placeholderWound() *domain.WoundAssessment {
	return &domain.WoundAssessment{
		Recommendations: []string{},
		WarningSigns:    []string{},
	}
}

var _ Strategy[*domain.WoundAssessment] = (*WoundParser)(nil)
