// Package assemble merges parsed results with request metadata into the
// final response objects. It holds no state across requests.
package assemble

import (
	"time"

	"github.com/google/uuid"

	"emoticare/internal/domain"
)

const maxRecommendedActions = 5

// SupportResponse is the outbound shape of a support request.
type SupportResponse struct {
	domain.SupportAdvice
	PatientID string    `json:"patient_id,omitempty"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

// PrescriptionResponse is the outbound shape of a prescription analysis.
type PrescriptionResponse struct {
	domain.MedicationList
	AnalysisID string    `json:"analysis_id"`
	PatientID  string    `json:"patient_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// SurgeryResponse is the outbound shape of a surgery simulation.
type SurgeryResponse struct {
	domain.SurgeryScript
	SimulationID string    `json:"simulation_id"`
	PatientID    string    `json:"patient_id"`
	SurgeryType  string    `json:"surgery_type"`
	Timestamp    time.Time `json:"timestamp"`
}

// WoundResponse is the outbound shape of a wound analysis.
type WoundResponse struct {
	domain.WoundAssessment
	AnalysisID      string    `json:"analysis_id"`
	PatientID       string    `json:"patient_id,omitempty"`
	WoundLocation   string    `json:"wound_location,omitempty"`
	DaysPostSurgery int       `json:"days_post_surgery,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Assembler attaches identifiers, timestamps and the static crisis-resource
// listing to parsed results. now and newID are injectable for tests.
type Assembler struct {
	highUrgency int
	now         func() time.Time
	newID       func() string
}

func New(highUrgencyThreshold int) *Assembler {
	if highUrgencyThreshold < domain.UrgencyMin {
		highUrgencyThreshold = domain.UrgencyMax - 1
	}
	return &Assembler{
		highUrgency: highUrgencyThreshold,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// NewWithClock is New with an injected clock and ID source.
func NewWithClock(highUrgencyThreshold int, now func() time.Time, newID func() string) *Assembler {
	a := New(highUrgencyThreshold)
	if now != nil {
		a.now = now
	}
	if newID != nil {
		a.newID = newID
	}
	return a
}

// Support merges a parsed advice with request metadata. Urgency at or above
// the threshold attaches the fixed crisis-resource listing for the caller's
// country; emotion-keyed coping actions are appended after any parsed ones.
func (a *Assembler) Support(req domain.SupportRequest, advice *domain.SupportAdvice, country string) *SupportResponse {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = a.newID()
	}

	urgency := req.UrgencyLevel
	if advice.UrgencyAssessment > urgency {
		urgency = advice.UrgencyAssessment
	}

	actions := append([]string{}, advice.RecommendedActions...)
	if urgency >= a.highUrgency {
		actions = append(actions, highUrgencyActions...)
	}
	emotion := req.EmotionType
	if emotion == "" {
		emotion = advice.EmotionDetected
	}
	if extra, ok := actionsByEmotion[emotion]; ok {
		actions = append(actions, extra...)
	}
	if len(actions) > maxRecommendedActions {
		actions = actions[:maxRecommendedActions]
	}

	resources := append([]domain.Resource{}, advice.Resources...)
	if urgency >= a.highUrgency {
		resources = append(resources, crisisResources(country)...)
	}
	resources = append(resources, generalResources...)

	out := *advice
	out.RecommendedActions = actions
	out.Resources = resources
	return &SupportResponse{
		SupportAdvice: out,
		PatientID:     req.PatientID,
		SessionID:     sessionID,
		Timestamp:     a.now(),
	}
}

// Prescription merges an extracted medication list with request metadata.
func (a *Assembler) Prescription(req domain.PrescriptionRequest, list *domain.MedicationList) *PrescriptionResponse {
	out := *list
	if req.AdditionalNotes != "" {
		out.AdditionalNotes = req.AdditionalNotes
	}
	return &PrescriptionResponse{
		MedicationList: out,
		AnalysisID:     a.newID(),
		PatientID:      req.PatientID,
		Timestamp:      a.now(),
	}
}

// Surgery merges a simulation with the patient profile it was built from.
func (a *Assembler) Surgery(req domain.SurgeryRequest, script *domain.SurgeryScript) *SurgeryResponse {
	return &SurgeryResponse{
		SurgeryScript: *script,
		SimulationID:  a.newID(),
		PatientID:     req.PatientID,
		SurgeryType:   req.SurgeryType,
		Timestamp:     a.now(),
	}
}

// Wound merges an assessment with request metadata.
func (a *Assembler) Wound(req domain.WoundRequest, assessment *domain.WoundAssessment) *WoundResponse {
	return &WoundResponse{
		WoundAssessment: *assessment,
		AnalysisID:      a.newID(),
		PatientID:       req.PatientID,
		WoundLocation:   req.WoundLocation,
		DaysPostSurgery: req.DaysPostSurgery,
		Timestamp:       a.now(),
	}
}
