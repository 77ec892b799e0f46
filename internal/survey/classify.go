// Package survey turns a free-form survey row into a structured reflection
// report. Question labels are routed by an ordered rule table; the two
// percentage categories accumulate totals as the row is compiled.
package survey

import (
	"strings"

	"github.com/pavelanni/reflector/internal/model"
)

// Tag is the classification of a question label.
type Tag string

const (
	TagIdentity        Tag = "identity"
	TagTestPrep        Tag = "test_prep"
	TagPointsLost      Tag = "points_lost"
	TagTestPrepOther   Tag = "test_prep_other"
	TagPointsLostOther Tag = "points_lost_other"
	TagIgnored         Tag = "ignored"
	TagGeneric         Tag = "generic"
)

// Question prefixes exactly as the form export emits them.
const (
	testPrepPrompt   = "What percentage"
	pointsLostPrompt = "Now that"
	otherPrompt      = `If "other"`
	blankColumn      = "Unnamed"
)

// Classification is the routing decision for one label. SubLabel is the
// bracketed sub-question name for category sub-questions, empty otherwise.
type Classification struct {
	Tag      Tag
	SubLabel string
}

// The rule table is evaluated top-down; the first match wins. Identity must
// precede the category rules and the override rule must precede the generic
// fallback.
var rules = []struct {
	match    func(label string) bool
	classify func(label string) Classification
}{
	{
		func(l string) bool { return l == model.LabelFirstName || l == model.LabelLastName },
		func(l string) Classification { return Classification{Tag: TagIdentity} },
	},
	{
		prefix(testPrepPrompt),
		func(l string) Classification { return Classification{Tag: TagTestPrep, SubLabel: subLabel(l)} },
	},
	{
		prefix(pointsLostPrompt),
		func(l string) Classification { return Classification{Tag: TagPointsLost, SubLabel: subLabel(l)} },
	},
	{
		prefix(otherPrompt),
		func(l string) Classification {
			// The form appends a positional "1" to the second "other" column.
			if strings.HasSuffix(l, "1") {
				return Classification{Tag: TagPointsLostOther}
			}
			return Classification{Tag: TagTestPrepOther}
		},
	},
	{
		prefix(blankColumn),
		func(l string) Classification { return Classification{Tag: TagIgnored} },
	},
}

// Classify routes a question label to its classification. Labels matching no
// rule are generic question/answer sections.
func Classify(label string) Classification {
	for _, r := range rules {
		if r.match(label) {
			return r.classify(label)
		}
	}
	return Classification{Tag: TagGeneric}
}

func prefix(p string) func(string) bool {
	return func(label string) bool { return strings.HasPrefix(label, p) }
}

// subLabel extracts the sub-question name between the first '[' and the last
// ']' of a category label. Returns "" when the brackets are absent.
func subLabel(label string) string {
	start := strings.Index(label, "[")
	end := strings.LastIndex(label, "]")
	if start < 0 || end <= start {
		return ""
	}
	return label[start+1 : end]
}
