package prompt

import (
	"strings"
	"testing"

	"emoticare/internal/domain"
)

func TestSupportPromptCarriesMandatoryFieldsVerbatim(t *testing.T) {
	b := NewBuilder()
	req := domain.SupportRequest{
		PatientMessage: "I have been unable to sleep since the operation",
		EmotionType:    domain.EmotionAnxiety,
		UrgencyLevel:   3,
		Context:        "post-surgery recovery",
	}

	p, err := b.Support(req)
	if err != nil {
		t.Fatalf("Support returned error: %v", err)
	}
	if p.Text == "" {
		t.Fatal("expected non-empty prompt text")
	}
	for _, want := range []string{
		"I have been unable to sleep since the operation",
		"anxiety",
		"Urgency Level: 3",
		"post-surgery recovery",
	} {
		if !strings.Contains(p.Text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if p.Image != nil {
		t.Error("support prompt should not carry an image")
	}
}

func TestSupportPromptIsIdempotent(t *testing.T) {
	b := NewBuilder()
	req := domain.SupportRequest{PatientMessage: "feeling overwhelmed", UrgencyLevel: 2}

	first, err := b.Support(req)
	if err != nil {
		t.Fatalf("Support returned error: %v", err)
	}
	second, err := b.Support(req)
	if err != nil {
		t.Fatalf("Support returned error: %v", err)
	}
	if first.Text != second.Text {
		t.Error("identical requests should render byte-identical prompts")
	}
}

func TestSupportPromptDefaultsOptionalFields(t *testing.T) {
	b := NewBuilder()
	p, err := b.Support(domain.SupportRequest{PatientMessage: "hello"})
	if err != nil {
		t.Fatalf("Support returned error: %v", err)
	}
	if !strings.Contains(p.Text, "Urgency Level: 1") {
		t.Error("missing urgency should default to 1")
	}
	if !strings.Contains(p.Text, "Not specified") {
		t.Error("absent optional fields should render as Not specified")
	}
}

func TestSupportPromptRejectsEmptyMessage(t *testing.T) {
	b := NewBuilder()
	if _, err := b.Support(domain.SupportRequest{}); err == nil {
		t.Fatal("expected validation error for empty patient message")
	} else if _, ok := domain.AsValidation(err); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestPrescriptionPromptAttachesImage(t *testing.T) {
	b := NewBuilder()
	img := []byte{0xff, 0xd8, 0xff}
	p, err := b.Prescription(domain.PrescriptionRequest{Image: img, ImageMIME: "image/jpeg"})
	if err != nil {
		t.Fatalf("Prescription returned error: %v", err)
	}
	if p.Text == "" {
		t.Fatal("expected non-empty prompt text")
	}
	if string(p.Image) != string(img) || p.ImageMIME != "image/jpeg" {
		t.Error("image bytes and MIME should pass through unchanged")
	}
}

func TestPrescriptionPromptRequiresImage(t *testing.T) {
	b := NewBuilder()
	if _, err := b.Prescription(domain.PrescriptionRequest{}); err == nil {
		t.Fatal("expected validation error for missing image")
	}
}

func TestSurgeryPromptCarriesProfileVerbatim(t *testing.T) {
	b := NewBuilder()
	req := domain.SurgeryRequest{
		PatientID:   "patient-7",
		SurgeryType: "laparoscopic appendectomy",
		Sex:         "female",
		BloodGroup:  "O+",
		HeightCM:    168,
		WeightKG:    61,
		DateOfBirth: "1990-04-12",
	}
	p, err := b.Surgery(req)
	if err != nil {
		t.Fatalf("Surgery returned error: %v", err)
	}
	for _, want := range []string{
		"laparoscopic appendectomy",
		"O+",
		"Height: 168 cm",
		"Weight: 61 kg",
		"1990-04-12",
	} {
		if !strings.Contains(p.Text, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	again, err := b.Surgery(req)
	if err != nil {
		t.Fatalf("Surgery returned error: %v", err)
	}
	if p.Text != again.Text {
		t.Error("identical profiles should render byte-identical prompts")
	}
}

func TestSurgeryPromptValidation(t *testing.T) {
	b := NewBuilder()
	base := domain.SurgeryRequest{
		PatientID:   "p",
		SurgeryType: "s",
		Sex:         "male",
		BloodGroup:  "A-",
		HeightCM:    180,
		WeightKG:    80,
		DateOfBirth: "1980-01-01",
	}

	missing := base
	missing.BloodGroup = ""
	if _, err := b.Surgery(missing); err == nil {
		t.Error("expected error for missing blood group")
	}

	badDOB := base
	badDOB.DateOfBirth = "12/04/1990"
	if _, err := b.Surgery(badDOB); err == nil {
		t.Error("expected error for malformed date of birth")
	}
}

func TestWoundPromptIncludesOptionalContext(t *testing.T) {
	b := NewBuilder()
	p, err := b.Wound(domain.WoundRequest{
		Image:           []byte{0x89, 0x50},
		ImageMIME:       "image/png",
		WoundLocation:   "left forearm",
		DaysPostSurgery: 12,
	})
	if err != nil {
		t.Fatalf("Wound returned error: %v", err)
	}
	if !strings.Contains(p.Text, "left forearm") {
		t.Error("prompt missing wound location")
	}
	if !strings.Contains(p.Text, "Days since surgery: 12") {
		t.Error("prompt missing days since surgery")
	}
}
