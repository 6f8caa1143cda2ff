package domain

import "time"

// EmotionType enumerates the emotional states a support request may declare.
type EmotionType string

const (
	EmotionAnxiety    EmotionType = "anxiety"
	EmotionDepression EmotionType = "depression"
	EmotionStress     EmotionType = "stress"
	EmotionGrief      EmotionType = "grief"
	EmotionAnger      EmotionType = "anger"
	EmotionLoneliness EmotionType = "loneliness"
	EmotionGeneral    EmotionType = "general"
)

var emotionTypes = map[EmotionType]struct{}{
	EmotionAnxiety:    {},
	EmotionDepression: {},
	EmotionStress:     {},
	EmotionGrief:      {},
	EmotionAnger:      {},
	EmotionLoneliness: {},
	EmotionGeneral:    {},
}

func (e EmotionType) Valid() bool {
	_, ok := emotionTypes[e]
	return ok
}

const (
	UrgencyMin = 1
	UrgencyMax = 5
)

// SupportRequest carries a patient's message asking for emotional support.
type SupportRequest struct {
	PatientMessage string      `json:"patient_message"`
	EmotionType    EmotionType `json:"emotion_type,omitempty"`
	UrgencyLevel   int         `json:"urgency_level,omitempty"`
	PatientID      string      `json:"patient_id,omitempty"`
	SessionID      string      `json:"session_id,omitempty"`
	Context        string      `json:"context,omitempty"`
}

func (r *SupportRequest) Validate() error {
	if r.PatientMessage == "" {
		return NewValidationError("patient_message", "is required")
	}
	if r.UrgencyLevel == 0 {
		r.UrgencyLevel = UrgencyMin
	}
	if r.UrgencyLevel < UrgencyMin || r.UrgencyLevel > UrgencyMax {
		return NewValidationError("urgency_level", "must be between 1 and 5")
	}
	if r.EmotionType != "" && !r.EmotionType.Valid() {
		return NewValidationError("emotion_type", "unknown emotion type")
	}
	return nil
}

// PrescriptionRequest carries a prescription photo for medication extraction.
type PrescriptionRequest struct {
	Image           []byte
	ImageMIME       string
	PatientID       string
	AdditionalNotes string
}

func (r *PrescriptionRequest) Validate() error {
	if len(r.Image) == 0 {
		return NewValidationError("prescription_image", "is required")
	}
	return nil
}

// SurgeryRequest carries the patient profile a surgery simulation is built from.
type SurgeryRequest struct {
	PatientID   string `json:"patient_id"`
	SurgeryType string `json:"surgery_type"`
	Sex         string `json:"sex"`
	BloodGroup  string `json:"blood_group"`
	HeightCM    int    `json:"height_in_cm"`
	WeightKG    int    `json:"weight"`
	DateOfBirth string `json:"date_of_birth"`
}

func (r *SurgeryRequest) Validate() error {
	switch {
	case r.PatientID == "":
		return NewValidationError("patient_id", "is required")
	case r.SurgeryType == "":
		return NewValidationError("surgery_type", "is required")
	case r.Sex == "":
		return NewValidationError("sex", "is required")
	case r.BloodGroup == "":
		return NewValidationError("blood_group", "is required")
	case r.HeightCM <= 0:
		return NewValidationError("height_in_cm", "must be positive")
	case r.WeightKG <= 0:
		return NewValidationError("weight", "must be positive")
	case r.DateOfBirth == "":
		return NewValidationError("date_of_birth", "is required")
	}
	if _, err := time.Parse("2006-01-02", r.DateOfBirth); err != nil {
		return NewValidationError("date_of_birth", "must be formatted YYYY-MM-DD")
	}
	return nil
}

// WoundRequest carries a post-surgical wound photo for healing analysis.
type WoundRequest struct {
	Image           []byte
	ImageMIME       string
	PatientID       string
	WoundLocation   string
	DaysPostSurgery int
	AdditionalNotes string
}

func (r *WoundRequest) Validate() error {
	if len(r.Image) == 0 {
		return NewValidationError("file", "is required")
	}
	if r.DaysPostSurgery < 0 {
		return NewValidationError("days_post_surgery", "must not be negative")
	}
	return nil
}
