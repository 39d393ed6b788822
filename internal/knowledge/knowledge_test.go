package knowledge

import (
	"context"
	"testing"

	"github.com/Reon1917/AU-GURU/internal/core"
)

func TestLoad_AllRecordsPresent(t *testing.T) {
	kb := Load(context.Background())

	for _, cat := range core.CategoryOrder {
		if !kb.Has(cat) {
			t.Errorf("record for %s did not load", cat)
		}
	}
}

func TestLoad_RecordContents(t *testing.T) {
	kb := Load(context.Background())

	if kb.Contacts.Email == "" || kb.Contacts.Phone == "" {
		t.Error("contacts record is missing basic fields")
	}
	if len(kb.Faculties.Faculties) == 0 {
		t.Error("faculties record holds no faculties")
	}
	for _, f := range kb.Faculties.Faculties {
		if f.Name == "" {
			t.Error("faculty with empty name")
		}
	}
	if kb.History.Founded != 1969 {
		t.Errorf("founded year = %d, want 1969", kb.History.Founded)
	}
	if len(kb.Tuitions.Ranges) == 0 {
		t.Error("tuitions record holds no ranges")
	}
	for _, r := range kb.Tuitions.Ranges {
		if r.MinPerYear <= 0 || r.MaxPerYear < r.MinPerYear {
			t.Errorf("implausible tuition range for %q: %d-%d", r.Program, r.MinPerYear, r.MaxPerYear)
		}
	}
}

func TestHas_UnknownCategory(t *testing.T) {
	kb := Load(context.Background())
	if kb.Has(core.Category("weather")) {
		t.Error("unknown category reported as present")
	}
}
