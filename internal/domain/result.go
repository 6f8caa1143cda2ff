package domain

// Resource is a static helpline, website or app listing attached to support
// responses.
type Resource struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	URL     string `json:"url,omitempty"`
}

// SupportAdvice is the structured outcome of a support generation.
type SupportAdvice struct {
	ResponseMessage    string      `json:"response_message"`
	EmotionDetected    EmotionType `json:"emotion_detected,omitempty"`
	SupportType        string      `json:"support_type"`
	UrgencyAssessment  int         `json:"urgency_assessment,omitempty"`
	RecommendedActions []string    `json:"recommended_actions"`
	Resources          []Resource  `json:"resources"`
	Confidence         float64     `json:"confidence_score"`
	Parsed             bool        `json:"parsed"`
}

// Medication is a single extracted prescription entry.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// MedicationList is the structured outcome of a prescription analysis.
type MedicationList struct {
	Medications      []Medication `json:"medications"`
	DoctorName       string       `json:"doctor_name,omitempty"`
	PatientName      string       `json:"patient_name,omitempty"`
	PrescriptionDate string       `json:"prescription_date,omitempty"`
	AdditionalNotes  string       `json:"additional_notes,omitempty"`
	RawText          string       `json:"raw_text,omitempty"`
	Confidence       float64      `json:"confidence_score"`
	Parsed           bool         `json:"parsed"`
}

// SurgeryStep is one step of a simulated procedure.
type SurgeryStep struct {
	StepNumber      int    `json:"step_number"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// SurgeryScript is the structured outcome of a surgery simulation.
type SurgeryScript struct {
	Script             string        `json:"surgery_script"`
	Overview           string        `json:"overview"`
	PatientSuitability string        `json:"patient_suitability"`
	ProcedureSteps     []SurgeryStep `json:"procedure_steps"`
	EstimatedDuration  int           `json:"estimated_duration"`
	RiskFactors        []string      `json:"risk_factors"`
	PostOperativeCare  []string      `json:"post_operative_care"`
	SuccessRate        float64       `json:"success_rate,omitempty"`
	Confidence         float64       `json:"confidence_score"`
	Parsed             bool          `json:"parsed"`
}

// WoundAssessment is the structured outcome of a wound photo analysis.
type WoundAssessment struct {
	HealingStatus   string   `json:"healing_status"`
	InfectionRisk   string   `json:"infection_risk"`
	HealingProgress string   `json:"healing_progress"`
	Recommendations []string `json:"recommendations"`
	WarningSigns    []string `json:"warning_signs"`
	Confidence      float64  `json:"confidence_score"`
	Parsed          bool     `json:"parsed"`
}
