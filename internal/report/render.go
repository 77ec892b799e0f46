// Package report renders compiled reflections into reStructuredText and
// drives the external typesetting pipeline that turns them into PDFs.
package report

import (
	"strings"

	"github.com/pavelanni/reflector/internal/model"
	"github.com/pavelanni/reflector/internal/survey"
)

const banner = "==============================================================================="

// Category headings exactly as the survey asked them.
const (
	testPrepHeading   = "What percentage of your test-preparation time was spent in each of these activities?"
	pointsLostHeading = "Now that you have looked over your graded exam, estimate the percentage of points you lost due to each of the following?"
	otherHeading      = `If "other" above please specify.`
)

// Render merges a compiled report into the document template. It is a pure
// function of its inputs; writing and conversion happen elsewhere.
func Render(rep model.CompiledReport, course string) string {
	var b strings.Builder

	b.WriteString(banner + "\n")
	b.WriteString(course + " Midterm Reflection\n")
	b.WriteString(banner + "\n\n")

	writeSection(&b, "Student", "=", rep.FullName())

	for _, s := range rep.Sections {
		writeSection(&b, s.Label, "=", s.Answer)
	}

	writeCategory(&b, testPrepHeading, rep.TestPrep, rep.TestPrepOther)
	writeCategory(&b, pointsLostHeading, rep.PointsLost, rep.PointsLostOther)

	return b.String()
}

func writeSection(b *strings.Builder, title, underline, body string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat(underline, len(title)) + "\n\n")
	b.WriteString(body + "\n\n")
}

func writeCategory(b *strings.Builder, heading string, block model.CategoryBlock, other string) {
	b.WriteString(heading + "\n")
	b.WriteString(strings.Repeat("=", len(heading)) + "\n\n")
	for _, item := range block.Items {
		b.WriteString("- " + item.SubLabel + ": " + item.Answer + "\n")
	}
	b.WriteString("\nTotal Percentage: " + survey.FormatPercent(block.Total) + "\n\n")

	writeSection(b, otherHeading, "-", other)
}
