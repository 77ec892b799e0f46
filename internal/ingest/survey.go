// Package ingest reads the delimited input files: the reflection survey
// export and the grade file. Header-level problems are fatal; nothing can be
// processed without a schema.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pavelanni/reflector/internal/model"
)

// ReadSurvey reads a reflection CSV into survey rows. The header row supplies
// the question labels; each row keeps the header's column order.
func ReadSurvey(path string) ([]model.SurveyRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open survey file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read survey header of %s: %w", path, err)
	}

	var rows []model.SurveyRow
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read survey row in %s: %w", path, err)
		}
		if len(rec) == 0 {
			continue
		}

		row := model.SurveyRow{Fields: make([]model.Field, 0, len(header))}
		for i, label := range header {
			answer := ""
			if i < len(rec) {
				answer = rec[i]
			}
			row.Fields = append(row.Fields, model.Field{Label: label, Answer: answer})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
