package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pavelanni/reflector/internal/model"
	"github.com/pavelanni/reflector/internal/survey"
)

// Byproducts removed from the output directory after the batch, including
// the LaTeX toolchain's own aux/log files.
var cleanupGlobs = []string{"*.aux", "*.log", "*.out", "*.rst", "*.tex"}

// Generator produces one final document per survey row.
type Generator struct {
	Course     string
	OutDir     string
	Typesetter Typesetter
}

// Run compiles, renders, and typesets every row, then removes intermediate
// artifacts so the output directory holds only final documents. Rows that
// cannot be compiled or typeset are reported and skipped; only filesystem
// failures on the directory itself abort the batch.
func (g *Generator) Run(ctx context.Context, rows []model.SurveyRow) error {
	if err := os.MkdirAll(g.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Compile the whole batch first: the naming rule needs to know which
	// last names are duplicated.
	var reports []model.CompiledReport
	for i, row := range rows {
		rep, err := survey.Compile(row)
		if err != nil {
			slog.Warn("skipping row", "row", i+1, "error", err)
			continue
		}
		reports = append(reports, rep)
	}

	lastNames := make([]string, len(reports))
	for i, rep := range reports {
		lastNames[i] = rep.LastName
	}
	dup := model.DuplicatedLastNames(lastNames)

	for _, rep := range reports {
		base := model.DocumentBase(rep.FirstName, rep.LastName, dup[strings.ToLower(rep.LastName)])
		rstPath := filepath.Join(g.OutDir, base+IntermediateExt)

		if err := os.WriteFile(rstPath, []byte(Render(rep, g.Course)), 0o644); err != nil {
			slog.Warn("skipping student, cannot write intermediate file",
				"student", rep.FullName(), "error", err)
			continue
		}
		if err := g.Typesetter.Typeset(ctx, rstPath, g.OutDir); err != nil {
			slog.Warn("skipping student, typesetting failed",
				"student", rep.FullName(), "error", err)
			continue
		}
		slog.Info("generated reflection summary", "student", rep.FullName(), "file", base+DocumentExt)
	}

	return g.cleanup()
}

func (g *Generator) cleanup() error {
	for _, glob := range cleanupGlobs {
		matches, err := filepath.Glob(filepath.Join(g.OutDir, glob))
		if err != nil {
			return fmt.Errorf("scan %s artifacts: %w", glob, err)
		}
		for _, path := range matches {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("remove artifact: %w", err)
			}
			slog.Debug("removed intermediate artifact", "path", path)
		}
	}
	return nil
}
