package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pavelanni/reflector/internal/model"
)

// Grade file column labels.
const (
	colEmail = "Email"
	colScore = "Score"
)

// ReadGrades reads the grade CSV. It requires the First Name, Last Name,
// Email, and Score columns; a missing column is a header-level failure and
// aborts the run. Rows with a non-numeric score are skipped with a
// diagnostic and excluded from the cohort mean.
func ReadGrades(path string) ([]model.GradeRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grades file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read grades header of %s: %w", path, err)
	}

	idx := make(map[string]int, len(header))
	for i, label := range header {
		idx[strings.TrimSpace(label)] = i
	}
	for _, required := range []string{model.LabelFirstName, model.LabelLastName, colEmail, colScore} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("grades file %s is missing the %q column", path, required)
		}
	}

	var grades []model.GradeRow
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read grades row in %s: %w", path, err)
		}
		if len(rec) == 0 {
			continue
		}

		row := model.GradeRow{
			FirstName: field(rec, idx[model.LabelFirstName]),
			LastName:  field(rec, idx[model.LabelLastName]),
			Email:     field(rec, idx[colEmail]),
		}
		raw := field(rec, idx[colScore])
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			slog.Warn("skipping grade row with unparseable score",
				"first_name", row.FirstName, "last_name", row.LastName, "score", raw)
			continue
		}
		row.Score = score
		grades = append(grades, row)
	}
	return grades, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
