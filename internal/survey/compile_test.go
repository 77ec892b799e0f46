package survey

import (
	"errors"
	"testing"

	"github.com/pavelanni/reflector/internal/model"
)

const (
	testPrepLabel   = "What percentage of your test-preparation time was spent in each of these activities?"
	pointsLostLabel = "Now that you have looked over your graded exam, estimate the percentage of points you lost due to each of the following?"
)

func testRow(fields ...model.Field) model.SurveyRow {
	return model.SurveyRow{Fields: fields}
}

func TestCompile(t *testing.T) {
	row := testRow(
		model.Field{Label: "Timestamp", Answer: "2024/03/01 10:12:00"},
		model.Field{Label: "First Name", Answer: "Ana"},
		model.Field{Label: "Last Name", Answer: "Lee"},
		model.Field{Label: testPrepLabel + " [Reading notes]", Answer: "40%"},
		model.Field{Label: testPrepLabel + " [Practice problems]", Answer: "65%"},
		model.Field{Label: `If "other" above please specify.`, Answer: "Flash cards"},
		model.Field{Label: pointsLostLabel + " [Algebra mistakes]", Answer: "30%"},
		model.Field{Label: `If "other" above please specify.1`, Answer: "Ran out of time"},
		model.Field{Label: "Any comments for the instructor?", Answer: "More examples please"},
		model.Field{Label: "Unnamed: 9", Answer: ""},
	)

	rep, err := Compile(row)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if rep.FirstName != "Ana" || rep.LastName != "Lee" {
		t.Errorf("identity = %q %q, want Ana Lee", rep.FirstName, rep.LastName)
	}
	if rep.TestPrep.Total != 105 {
		t.Errorf("test prep total = %v, want 105", rep.TestPrep.Total)
	}
	if len(rep.TestPrep.Items) != 2 {
		t.Fatalf("expected 2 test prep items, got %d", len(rep.TestPrep.Items))
	}
	if rep.TestPrep.Items[0].SubLabel != "Reading notes" || rep.TestPrep.Items[1].SubLabel != "Practice problems" {
		t.Errorf("test prep items out of encounter order: %+v", rep.TestPrep.Items)
	}
	if rep.PointsLost.Total != 30 {
		t.Errorf("points lost total = %v, want 30", rep.PointsLost.Total)
	}
	if rep.TestPrepOther != "Flash cards" {
		t.Errorf("test prep other = %q", rep.TestPrepOther)
	}
	if rep.PointsLostOther != "Ran out of time" {
		t.Errorf("points lost other = %q", rep.PointsLostOther)
	}

	// Generic sections keep column order and exclude everything classified
	// elsewhere.
	if len(rep.Sections) != 2 {
		t.Fatalf("expected 2 generic sections, got %d: %+v", len(rep.Sections), rep.Sections)
	}
	if rep.Sections[0].Label != "Timestamp" {
		t.Errorf("first section = %q, want Timestamp", rep.Sections[0].Label)
	}
	if rep.Sections[1].Label != "Any comments for the instructor?" {
		t.Errorf("second section = %q", rep.Sections[1].Label)
	}
}

func TestCompileTotalIgnoresMalformed(t *testing.T) {
	row := testRow(
		model.Field{Label: "First Name", Answer: "Ben"},
		model.Field{Label: "Last Name", Answer: "Okafor"},
		model.Field{Label: testPrepLabel + " [Reading notes]", Answer: "50%"},
		model.Field{Label: testPrepLabel + " [Office hours]", Answer: "some"},
		model.Field{Label: testPrepLabel + " [Practice problems]", Answer: "25%"},
	)

	rep, err := Compile(row)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if rep.TestPrep.Total != 75 {
		t.Errorf("total = %v, want 75 (malformed answer counts as 0)", rep.TestPrep.Total)
	}
	// The malformed answer is still itemized.
	if len(rep.TestPrep.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(rep.TestPrep.Items))
	}
}

func TestCompileMissingIdentity(t *testing.T) {
	tests := []struct {
		name      string
		row       model.SurveyRow
		wantLabel string
	}{
		{"no first name", testRow(model.Field{Label: "Last Name", Answer: "Lee"}), "First Name"},
		{"no last name", testRow(model.Field{Label: "First Name", Answer: "Ana"}), "Last Name"},
		{"blank last name", testRow(
			model.Field{Label: "First Name", Answer: "Ana"},
			model.Field{Label: "Last Name", Answer: "   "},
		), "Last Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.row)
			var mi *MissingIdentityError
			if !errors.As(err, &mi) {
				t.Fatalf("expected MissingIdentityError, got %v", err)
			}
			if mi.Label != tt.wantLabel {
				t.Errorf("missing label = %q, want %q", mi.Label, tt.wantLabel)
			}
		})
	}
}

func TestCompileClassifiesEveryField(t *testing.T) {
	row := testRow(
		model.Field{Label: "First Name", Answer: "Ana"},
		model.Field{Label: "Last Name", Answer: "Lee"},
		model.Field{Label: testPrepLabel + " [Reading notes]", Answer: "40%"},
		model.Field{Label: pointsLostLabel + " [Careless errors]", Answer: "10%"},
		model.Field{Label: `If "other" above please specify.`, Answer: "x"},
		model.Field{Label: `If "other" above please specify.1`, Answer: "y"},
		model.Field{Label: "Unnamed: 7", Answer: ""},
		model.Field{Label: "How many hours did you study?", Answer: "12"},
	)

	rep, err := Compile(row)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// 8 fields: 2 identity + 1 per category + 2 overrides + 1 ignored + 1
	// generic. Nothing disappears and nothing is double-counted.
	placed := 2 + len(rep.TestPrep.Items) + len(rep.PointsLost.Items) + 2 + 1 + len(rep.Sections)
	if placed != len(row.Fields) {
		t.Errorf("placed %d of %d fields", placed, len(row.Fields))
	}
}
