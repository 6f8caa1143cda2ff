package parse

import (
	"strings"

	"github.com/rs/zerolog"

	"emoticare/internal/domain"
)

// supportFieldsExpected counts the fields a fully structured support reply
// carries: response message, detected emotion, urgency assessment.
const supportFieldsExpected = 3

// placeholderSupportMessage is returned at confidence zero so the request
// still succeeds when the model produced nothing usable.
const placeholderSupportMessage = "We hear you, and what you are feeling matters. We could not prepare a tailored reply right now; if you are in distress, please reach out to someone you trust or a professional."

type supportPayload struct {
	ResponseMessage    string   `json:"response_message"`
	EmotionDetected    string   `json:"emotion_detected"`
	UrgencyAssessment  float64  `json:"urgency_assessment"`
	RecommendedActions []string `json:"recommended_actions"`
}

// SupportParser extracts a supportive reply from emotional-support output.
type SupportParser struct {
	logger zerolog.Logger
}

func NewSupportParser(logger *zerolog.Logger) *SupportParser {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &SupportParser{logger: l}
}

func (p *SupportParser) Parse(text string) *domain.SupportAdvice {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return placeholderSupport()
	}

	if payload, ok := decodePayload[supportPayload](trimmed); ok && strings.TrimSpace(payload.ResponseMessage) != "" {
		return fromSupportPayload(payload)
	}

	if looksLikeRefusal(trimmed) {
		p.logger.Debug().Bool("refusal_hint", true).Msg("parse: support reply looks like a refusal")
	}

	// Plain prose is still a usable reply; only the message field counts.
	advice := placeholderSupport()
	advice.ResponseMessage = trimmed
	advice.Confidence = clamp01(1.0 / supportFieldsExpected)
	advice.Parsed = true
	return advice
}

func fromSupportPayload(payload supportPayload) *domain.SupportAdvice {
	advice := &domain.SupportAdvice{
		ResponseMessage:    strings.TrimSpace(payload.ResponseMessage),
		SupportType:        "emotional_support",
		RecommendedActions: []string{},
		Resources:          []domain.Resource{},
		Parsed:             true,
	}
	found := 1.0
	emotion := domain.EmotionType(strings.ToLower(strings.TrimSpace(payload.EmotionDetected)))
	if emotion.Valid() {
		advice.EmotionDetected = emotion
		found++
	}
	urgency := int(payload.UrgencyAssessment)
	if urgency >= domain.UrgencyMin && urgency <= domain.UrgencyMax {
		advice.UrgencyAssessment = urgency
		found++
	}
	for _, action := range payload.RecommendedActions {
		if action = strings.TrimSpace(action); action != "" {
			advice.RecommendedActions = append(advice.RecommendedActions, action)
		}
	}
	advice.Confidence = clamp01(found / supportFieldsExpected)
	return advice
}

func placeholderSupport() *domain.SupportAdvice {
	return &domain.SupportAdvice{
		ResponseMessage:    placeholderSupportMessage,
		SupportType:        "emotional_support",
		RecommendedActions: []string{},
		Resources:          []domain.Resource{},
	}
}

var _ Strategy[*domain.SupportAdvice] = (*SupportParser)(nil)
