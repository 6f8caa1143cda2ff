package prompt

import (
	"fmt"
	"strings"

	"emoticare/internal/domain"
)

// Prompt is the fully rendered instruction sent to the generative model,
// optionally carrying an inline image. It lives for a single request.
type Prompt struct {
	Text      string
	Image     []byte
	ImageMIME string
}

// Builder renders one fixed template per use case. Templates are pure string
// interpolation of request fields, so an identical request always yields a
// byte-identical prompt.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

const supportSystem = `You are a compassionate AI emotional support assistant for EmotiCare. Respond with empathy, never provide medical diagnosis or treatment advice, validate the patient's feelings and encourage professional help when appropriate. If the situation seems urgent (mentions of self-harm or suicide), prioritize safety resources.
Respond strictly with JSON matching this schema: {"response_message":string,"emotion_detected":string,"urgency_assessment":number,"recommended_actions":string[]}. emotion_detected is one of: anxiety, depression, stress, grief, anger, loneliness, general. urgency_assessment is 1 (low) to 5 (critical).`

// Support renders the emotional-support template.
func (b *Builder) Support(req domain.SupportRequest) (*Prompt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sb := &strings.Builder{}
	sb.WriteString(supportSystem)
	fmt.Fprintf(sb, "\n\nPatient Message: %s\n", req.PatientMessage)
	fmt.Fprintf(sb, "Emotion Type: %s\n", orNotSpecified(string(req.EmotionType)))
	fmt.Fprintf(sb, "Urgency Level: %d\n", req.UrgencyLevel)
	fmt.Fprintf(sb, "Context: %s\n", orNotSpecified(req.Context))
	sb.WriteString("\nProvide a compassionate and helpful response.")
	return &Prompt{Text: sb.String()}, nil
}

const prescriptionInstruction = `You are a medical prescription analysis AI. Analyze this prescription image and extract the information as strict JSON:
{"medications":[{"name":string,"dosage":string,"frequency":string,"duration":string,"instructions":string}],"doctor_name":string,"patient_name":string,"prescription_date":string,"additional_notes":string,"raw_text":string}
Only extract information that is clearly visible; use empty strings for anything unclear. Pay special attention to medication names, dosages and frequencies, and place all readable text in raw_text.`

// Prescription renders the prescription-analysis template with the image
// attached inline.
func (b *Builder) Prescription(req domain.PrescriptionRequest) (*Prompt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sb := &strings.Builder{}
	sb.WriteString(prescriptionInstruction)
	if req.AdditionalNotes != "" {
		fmt.Fprintf(sb, "\nAdditional notes from the requester: %s", req.AdditionalNotes)
	}
	sb.WriteString("\nAnalyze this prescription image.")
	return &Prompt{Text: sb.String(), Image: req.Image, ImageMIME: req.ImageMIME}, nil
}

const surgerySchema = `{"surgery_script":string,"overview":string,"patient_suitability":string,"procedure_steps":[{"step_number":number,"title":string,"description":string,"duration_minutes":number}],"estimated_duration":number,"risk_factors":string[],"post_operative_care":string[],"success_rate":number}`

// Surgery renders the surgery-simulation template.
func (b *Builder) Surgery(req domain.SurgeryRequest) (*Prompt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sb := &strings.Builder{}
	sb.WriteString("You are an expert surgical consultant AI. Generate a comprehensive surgery simulation report as strict JSON matching this schema: ")
	sb.WriteString(surgerySchema)
	fmt.Fprintf(sb, "\n\nSurgery Type: %s\n", req.SurgeryType)
	fmt.Fprintf(sb, "Patient ID: %s\n", req.PatientID)
	fmt.Fprintf(sb, "Sex: %s\n", req.Sex)
	fmt.Fprintf(sb, "Blood Group: %s\n", req.BloodGroup)
	fmt.Fprintf(sb, "Height: %d cm\n", req.HeightCM)
	fmt.Fprintf(sb, "Weight: %d kg\n", req.WeightKG)
	fmt.Fprintf(sb, "Date of Birth: %s\n", req.DateOfBirth)
	sb.WriteString("\nThe surgery_script must be a single continuous paragraph of roughly 450-500 words, educational for surgery studies, naming the anatomical structures involved, potential complications and modern techniques, tailored to this exact patient profile.")
	return &Prompt{Text: sb.String()}, nil
}

const woundInstruction = `You are a post-operative wound monitoring AI. Analyze this photo of a surgical site and respond with strict JSON:
{"healing_status":string,"infection_risk":string,"healing_progress":string,"recommendations":string[],"warning_signs":string[]}
healing_status is a short assessment, infection_risk is one of low, moderate, high, and healing_progress describes the stage of healing observed.`

// Wound renders the wound-analysis template with the image attached inline.
func (b *Builder) Wound(req domain.WoundRequest) (*Prompt, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sb := &strings.Builder{}
	sb.WriteString(woundInstruction)
	if req.WoundLocation != "" {
		fmt.Fprintf(sb, "\nWound location: %s", req.WoundLocation)
	}
	if req.DaysPostSurgery > 0 {
		fmt.Fprintf(sb, "\nDays since surgery: %d", req.DaysPostSurgery)
	}
	if req.AdditionalNotes != "" {
		fmt.Fprintf(sb, "\nAdditional notes: %s", req.AdditionalNotes)
	}
	sb.WriteString("\nAnalyze this wound image.")
	return &Prompt{Text: sb.String(), Image: req.Image, ImageMIME: req.ImageMIME}, nil
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Not specified"
	}
	return v
}
