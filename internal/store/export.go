package store

import (
	"fmt"

	"github.com/discfacil/discfacil/internal/assessment"
	"github.com/discfacil/discfacil/internal/model"
)

// ExportHistory builds export-ready records from stored history. Scores
// are recomputed from each answer snapshot against the given question
// catalogue; the snapshots themselves are never modified.
func (s *Store) ExportHistory(questions []model.Question) ([]model.RecordExport, error) {
	records, err := s.ListHistory()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	var out []model.RecordExport
	for _, rec := range records {
		out = append(out, model.RecordExport{
			ID:              rec.ID,
			ParticipantName: rec.ParticipantName,
			CreatedAt:       rec.CreatedAt,
			Scores:          assessment.ScoreAnswers(rec.Answers, questions),
			Answers:         rec.Answers,
			Analysis:        rec.Analysis,
		})
	}
	return out, nil
}
