package parser

import (
	"strings"
	"testing"
)

func TestResolveSchema_DefaultWhenBlank(t *testing.T) {
	t.Parallel()

	block, note := ResolveSchema("", nil)
	if !strings.Contains(block, "personal") || !strings.Contains(block, "certifications") {
		t.Fatalf("default schema missing expected sections: %q", block)
	}
	if note != "" {
		t.Fatalf("note = %q, want empty", note)
	}

	blockWS, _ := ResolveSchema("   \n\t ", nil)
	if blockWS != block {
		t.Fatal("whitespace-only custom schema should fall back to the default")
	}
}

func TestResolveSchema_CustomBlockVerbatim(t *testing.T) {
	t.Parallel()

	custom := `{ "name": "", "roles": [] }`
	block, _ := ResolveSchema(custom, nil)
	if block != custom {
		t.Fatalf("block = %q, want custom schema verbatim", block)
	}
}

func TestResolveSchema_FieldsNoteOrderAndDedupe(t *testing.T) {
	t.Parallel()

	_, note := ResolveSchema("", []string{"visaStatus", "salary", "visaStatus", " salary ", ""})
	if !strings.Contains(note, "visaStatus, salary") {
		t.Fatalf("note = %q, want fields in submission order without duplicates", note)
	}
	if strings.Count(note, "visaStatus") != 1 || strings.Count(note, "salary") != 1 {
		t.Fatalf("note = %q, fields repeated", note)
	}
	if !strings.Contains(note, "Also try to extract these custom fields:") {
		t.Fatalf("note = %q, missing lead-in", note)
	}
	if !strings.Contains(note, "JSON MUST HAVE THIS FIELD") {
		t.Fatalf("note = %q, missing field requirement clause", note)
	}
}
