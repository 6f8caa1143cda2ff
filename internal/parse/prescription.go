package parse

import (
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"emoticare/internal/domain"
)

// medicationFieldsExpected counts the core fields per extracted entry:
// name, dosage, frequency, duration. Instructions are a bonus and do not
// lower confidence when absent.
const medicationFieldsExpected = 4

type prescriptionPayload struct {
	Medications []struct {
		Name         string `json:"name"`
		Dosage       string `json:"dosage"`
		Frequency    string `json:"frequency"`
		Duration     string `json:"duration"`
		Instructions string `json:"instructions"`
	} `json:"medications"`
	DoctorName       string `json:"doctor_name"`
	PatientName      string `json:"patient_name"`
	PrescriptionDate string `json:"prescription_date"`
	AdditionalNotes  string `json:"additional_notes"`
	RawText          string `json:"raw_text"`
}

// PrescriptionParser extracts medication entries from prescription-analysis
// output.
type PrescriptionParser struct {
	logger zerolog.Logger
	caser  cases.Caser
}

func NewPrescriptionParser(logger *zerolog.Logger) *PrescriptionParser {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &PrescriptionParser{
		logger: l,
		caser:  cases.Title(language.Und, cases.NoLower),
	}
}

func (p *PrescriptionParser) Parse(text string) *domain.MedicationList {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return emptyMedicationList()
	}

	if payload, ok := decodePayload[prescriptionPayload](trimmed); ok && len(payload.Medications) > 0 {
		return p.fromPayload(payload)
	}

	if list := p.fromLines(trimmed); len(list.Medications) > 0 {
		return list
	}

	p.logger.Debug().
		Bool("refusal_hint", looksLikeRefusal(trimmed)).
		Msg("parse: no medication structure recognized")

	list := emptyMedicationList()
	list.RawText = trimmed
	return list
}

func (p *PrescriptionParser) fromPayload(payload prescriptionPayload) *domain.MedicationList {
	list := &domain.MedicationList{
		DoctorName:       payload.DoctorName,
		PatientName:      payload.PatientName,
		PrescriptionDate: payload.PrescriptionDate,
		AdditionalNotes:  payload.AdditionalNotes,
		RawText:          payload.RawText,
	}
	var coverage float64
	for _, med := range payload.Medications {
		if strings.TrimSpace(med.Name) == "" {
			continue
		}
		entry := domain.Medication{
			Name:         p.caser.String(strings.TrimSpace(med.Name)),
			Dosage:       strings.TrimSpace(med.Dosage),
			Frequency:    strings.TrimSpace(med.Frequency),
			Duration:     strings.TrimSpace(med.Duration),
			Instructions: strings.TrimSpace(med.Instructions),
		}
		list.Medications = append(list.Medications, entry)
		coverage += entryCoverage(entry)
	}
	if len(list.Medications) == 0 {
		return emptyMedicationList()
	}
	list.Confidence = clamp01(coverage / float64(len(list.Medications)))
	list.Parsed = true
	return list
}

// fromLines scans key-value segments like
// "Medication: Amoxicillin, Dosage: 500mg, Frequency: three times daily".
// A name key starts a new entry; other keys attach to the current one.
func (p *PrescriptionParser) fromLines(text string) *domain.MedicationList {
	list := &domain.MedicationList{RawText: text}
	var current *domain.Medication
	var coverage float64

	flush := func() {
		if current != nil && current.Name != "" {
			list.Medications = append(list.Medications, *current)
			coverage += entryCoverage(*current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		for _, segment := range strings.Split(line, ",") {
			key, value, ok := splitKeyValue(segment)
			if !ok {
				continue
			}
			switch key {
			case "medication", "medicine", "name", "drug":
				flush()
				current = &domain.Medication{Name: p.caser.String(value)}
			case "dosage", "dose":
				if current != nil {
					current.Dosage = value
				}
			case "frequency":
				if current != nil {
					current.Frequency = value
				}
			case "duration":
				if current != nil {
					current.Duration = value
				}
			case "instructions", "instruction", "notes":
				if current != nil {
					current.Instructions = value
				}
			case "doctor", "doctor name":
				list.DoctorName = value
			case "patient", "patient name":
				list.PatientName = value
			case "date", "prescription date":
				list.PrescriptionDate = value
			}
		}
	}
	flush()

	if len(list.Medications) == 0 {
		return list
	}
	list.Confidence = clamp01(coverage / float64(len(list.Medications)))
	list.Parsed = true
	return list
}

func entryCoverage(med domain.Medication) float64 {
	found := 0
	for _, v := range []string{med.Name, med.Dosage, med.Frequency, med.Duration} {
		if v != "" {
			found++
		}
	}
	return float64(found) / medicationFieldsExpected
}

func emptyMedicationList() *domain.MedicationList {
	return &domain.MedicationList{Medications: []domain.Medication{}}
}

var _ Strategy[*domain.MedicationList] = (*PrescriptionParser)(nil)
