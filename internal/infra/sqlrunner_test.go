package infra

import (
	"strings"
	"testing"

	"emoticare/internal/sqlinline"
)

func TestExtractMarkerFromTaggedQuery(t *testing.T) {
	marker, trimmed, err := extractMarker(sqlinline.QGetMedication)
	if err != nil {
		t.Fatalf("extractMarker returned error: %v", err)
	}
	if len(marker) != 36 {
		t.Errorf("marker = %q, want a uuid", marker)
	}
	if strings.Contains(trimmed, "--sql") {
		t.Error("marker line should be stripped from the executed query")
	}
	if !strings.Contains(trimmed, "FROM medications") {
		t.Errorf("query body lost: %q", trimmed)
	}
}

func TestExtractMarkerRejectsUntaggedQuery(t *testing.T) {
	if _, _, err := extractMarker("SELECT 1"); err == nil {
		t.Fatal("expected error for untagged query")
	}
}

func TestAllInlineQueriesCarryMarkers(t *testing.T) {
	queries := []string{
		sqlinline.QInsertMedication,
		sqlinline.QGetMedication,
		sqlinline.QListMedicationsByPatient,
		sqlinline.QUpdateMedication,
		sqlinline.QDeleteMedication,
	}
	for i, q := range queries {
		if _, _, err := extractMarker(q); err != nil {
			t.Errorf("query %d: %v", i, err)
		}
	}
}
