package survey

import (
	"strings"

	"github.com/pavelanni/reflector/internal/model"
)

// MissingIdentityError reports a row that cannot be filed because an
// identity field is absent or blank.
type MissingIdentityError struct {
	Label string
}

func (e *MissingIdentityError) Error() string {
	return "row has no usable " + e.Label + " field"
}

// Compile classifies every field of a survey row in column order and
// assembles the structured report, accumulating the two category totals as
// it goes. Every field lands in exactly one report slot; only blank-column
// placeholders are dropped.
func Compile(row model.SurveyRow) (model.CompiledReport, error) {
	var rep model.CompiledReport

	for _, f := range row.Fields {
		c := Classify(f.Label)
		switch c.Tag {
		case TagIdentity:
			if f.Label == model.LabelFirstName {
				rep.FirstName = strings.TrimSpace(f.Answer)
			} else {
				rep.LastName = strings.TrimSpace(f.Answer)
			}
		case TagTestPrep:
			rep.TestPrep.Items = append(rep.TestPrep.Items, model.CategoryItem{SubLabel: c.SubLabel, Answer: f.Answer})
			rep.TestPrep.Total += ParsePercent(f.Answer)
		case TagPointsLost:
			rep.PointsLost.Items = append(rep.PointsLost.Items, model.CategoryItem{SubLabel: c.SubLabel, Answer: f.Answer})
			rep.PointsLost.Total += ParsePercent(f.Answer)
		case TagTestPrepOther:
			rep.TestPrepOther = f.Answer
		case TagPointsLostOther:
			rep.PointsLostOther = f.Answer
		case TagIgnored:
			// Blank trailing columns from the tabular export.
		default:
			rep.Sections = append(rep.Sections, model.Section{Label: f.Label, Answer: f.Answer})
		}
	}

	if rep.FirstName == "" {
		return rep, &MissingIdentityError{Label: model.LabelFirstName}
	}
	if rep.LastName == "" {
		return rep, &MissingIdentityError{Label: model.LabelLastName}
	}
	return rep, nil
}
