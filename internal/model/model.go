package model

import "strings"

// Identity field labels as they appear in the form export header.
const (
	LabelFirstName = "First Name"
	LabelLastName  = "Last Name"
)

// Field is a single question/answer cell from a survey row.
type Field struct {
	Label  string
	Answer string
}

// SurveyRow is one student's submission. Fields keep the column order of the
// source file; generic report sections follow that order.
type SurveyRow struct {
	Fields []Field
}

// Value returns the answer for the given label and whether it was present.
func (r SurveyRow) Value(label string) (string, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f.Answer, true
		}
	}
	return "", false
}

// Section is a generic question/answer pair rendered verbatim.
type Section struct {
	Label  string
	Answer string
}

// CategoryItem is one sub-question of a percentage category, keyed by the
// bracketed sub-label from the question text.
type CategoryItem struct {
	SubLabel string
	Answer   string
}

// CategoryBlock collects a category's itemized answers and the running total
// of their parsed percentages.
type CategoryBlock struct {
	Items []CategoryItem
	Total float64
}

// CompiledReport is the structured form of one student's reflection.
type CompiledReport struct {
	FirstName string
	LastName  string

	Sections []Section

	TestPrep        CategoryBlock
	PointsLost      CategoryBlock
	TestPrepOther   string
	PointsLostOther string
}

// FullName returns the student's display name.
func (r CompiledReport) FullName() string {
	return r.FirstName + " " + r.LastName
}

// GradeRow is one row of the grade file used for dispatch.
type GradeRow struct {
	FirstName string
	LastName  string
	Email     string
	Score     float64
}

// CoverVariant identifies which cover text a recipient received.
type CoverVariant string

const (
	// CoverStandard is the empty variant for scores at or above the mean.
	CoverStandard CoverVariant = "standard"
	// CoverEncouragement is the variant for scores strictly below the mean.
	CoverEncouragement CoverVariant = "encouragement"
)

// Outcome is the result of one recipient's dispatch.
type Outcome string

const (
	OutcomeSent              Outcome = "sent"
	OutcomeAttachmentMissing Outcome = "attachment_missing"
	OutcomeTransportFailed   Outcome = "transport_failed"
)

// DispatchRecord links a grade row to its dispatch result.
type DispatchRecord struct {
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	Email      string       `json:"email"`
	Score      float64      `json:"score"`
	Variant    CoverVariant `json:"variant"`
	Outcome    Outcome      `json:"outcome"`
	Attachment string       `json:"attachment"`
	Detail     string       `json:"detail,omitempty"`
}

// DocumentBase returns the base filename (no extension) for a student's
// document: the lower-cased last name, disambiguated with the lower-cased
// first name when the last name is shared within the batch.
func DocumentBase(firstName, lastName string, duplicated bool) string {
	base := strings.ToLower(lastName)
	if duplicated {
		base += "." + strings.ToLower(firstName)
	}
	return base
}

// DuplicatedLastNames reports which lower-cased last names occur more than
// once in a batch. The generator and the dispatcher each derive filenames
// from their own batch with this, so the naming rule stays deterministic.
func DuplicatedLastNames(lastNames []string) map[string]bool {
	counts := make(map[string]int, len(lastNames))
	for _, name := range lastNames {
		counts[strings.ToLower(name)]++
	}
	dup := make(map[string]bool)
	for name, n := range counts {
		if n > 1 {
			dup[name] = true
		}
	}
	return dup
}
