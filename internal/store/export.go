package store

import (
	"fmt"

	"github.com/pavelanni/reflector/internal/model"
)

// ExportAllRuns builds export-ready run summaries from the whole history.
func (s *Store) ExportAllRuns() ([]model.RunExport, error) {
	runs, err := s.ListRuns()
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	var exports []model.RunExport
	for _, run := range runs {
		records, err := s.RecordsForRun(run.ID)
		if err != nil {
			return nil, fmt.Errorf("records for run %d: %w", run.ID, err)
		}
		exports = append(exports, model.RunExport{
			Run:     run,
			Records: records,
		})
	}
	return exports, nil
}
