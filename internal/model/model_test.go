package model

import "testing"

func TestDocumentBase(t *testing.T) {
	tests := []struct {
		name       string
		first      string
		last       string
		duplicated bool
		want       string
	}{
		{"simple", "Ana", "Lee", false, "lee"},
		{"lower-cases", "Ana", "O'Brien", false, "o'brien"},
		{"duplicated", "Ana", "Lee", true, "lee.ana"},
		{"duplicated mixed case", "Ben", "LEE", true, "lee.ben"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DocumentBase(tt.first, tt.last, tt.duplicated); got != tt.want {
				t.Errorf("DocumentBase(%q, %q, %v) = %q, want %q", tt.first, tt.last, tt.duplicated, got, tt.want)
			}
		})
	}
}

func TestDuplicatedLastNames(t *testing.T) {
	dup := DuplicatedLastNames([]string{"Lee", "Okafor", "lee", "Singh"})
	if !dup["lee"] {
		t.Error("lee should be duplicated (case-insensitive)")
	}
	if dup["okafor"] || dup["singh"] {
		t.Errorf("unique names flagged as duplicated: %v", dup)
	}
}

func TestSurveyRowValue(t *testing.T) {
	row := SurveyRow{Fields: []Field{
		{Label: "First Name", Answer: "Ana"},
		{Label: "Q", Answer: "x"},
	}}
	if v, ok := row.Value("First Name"); !ok || v != "Ana" {
		t.Errorf("Value = %q, %v", v, ok)
	}
	if _, ok := row.Value("missing"); ok {
		t.Error("expected missing label to report not present")
	}
}
