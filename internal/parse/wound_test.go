package parse

import "testing"

func TestWoundParseJSONPayload(t *testing.T) {
	p := NewWoundParser(nil)
	a := p.Parse(`{
		"healing_status": "closing well",
		"infection_risk": "Medium",
		"healing_progress": "granulation stage",
		"recommendations": ["keep the site dry"],
		"warning_signs": ["spreading redness"]
	}`)

	if a.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", a.Confidence)
	}
	if a.InfectionRisk != "moderate" {
		t.Errorf("risk should normalize medium to moderate, got %q", a.InfectionRisk)
	}
}

func TestWoundParseLabeledLines(t *testing.T) {
	p := NewWoundParser(nil)
	a := p.Parse("Healing Status: edges approximated\nInfection Risk: low\nRecommendations: change dressing daily")

	if a.HealingStatus != "edges approximated" {
		t.Errorf("status = %q", a.HealingStatus)
	}
	if a.InfectionRisk != "low" {
		t.Errorf("risk = %q", a.InfectionRisk)
	}
	want := 3.0 / 5
	if diff := a.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("confidence = %v, want %v", a.Confidence, want)
	}
}

func TestWoundParseUnusableTextDegrades(t *testing.T) {
	p := NewWoundParser(nil)
	for _, text := range []string{"", "no structure here at all", "I cannot analyze this image."} {
		a := p.Parse(text)
		if a.Confidence != 0 || a.Parsed {
			t.Errorf("Parse(%q) should degrade to confidence 0, got %v", text, a.Confidence)
		}
		if a.Recommendations == nil || a.WarningSigns == nil {
			t.Errorf("Parse(%q) slices should be empty, not nil", text)
		}
	}
}
