package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/discfacil/discfacil/internal/model"
)

// historyCap limits stored history to the most recent entries.
const historyCap = 50

// SaveHistory snapshots a finished assessment and returns its record.
// Older entries beyond the cap are pruned.
func (s *Store) SaveHistory(participantName string, answers model.Answers) (model.HistoryRecord, error) {
	rec := model.HistoryRecord{
		ID:              uuid.NewString(),
		ParticipantName: participantName,
		Answers:         answers.Clone(),
		CreatedAt:       time.Now(),
	}

	data, err := json.Marshal(rec.Answers)
	if err != nil {
		return model.HistoryRecord{}, fmt.Errorf("marshal answers: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.HistoryRecord{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO history (id, participant_name, answers, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.ParticipantName, string(data), rec.CreatedAt,
	)
	if err != nil {
		return model.HistoryRecord{}, err
	}

	_, err = tx.Exec(
		`DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY created_at DESC, rowid DESC LIMIT ?
		)`, historyCap,
	)
	if err != nil {
		return model.HistoryRecord{}, err
	}

	return rec, tx.Commit()
}

// ListHistory returns stored records, newest first.
func (s *Store) ListHistory() ([]model.HistoryRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, participant_name, answers, created_at, analysis
		 FROM history ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []model.HistoryRecord
	for rows.Next() {
		rec, err := scanHistory(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetHistory returns one record, or nil if it does not exist.
func (s *Store) GetHistory(id string) (*model.HistoryRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, participant_name, answers, created_at, analysis FROM history WHERE id = ?`, id,
	)
	rec, err := scanHistory(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SetAnalysis stores the generated narrative analysis on a record.
func (s *Store) SetAnalysis(id, analysis string) error {
	_, err := s.db.Exec(`UPDATE history SET analysis = ? WHERE id = ?`, analysis, id)
	return err
}

// ClearHistory removes every stored record.
func (s *Store) ClearHistory() error {
	_, err := s.db.Exec(`DELETE FROM history`)
	return err
}

// HistoryCount returns the number of stored records.
func (s *Store) HistoryCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&count)
	return count, err
}

func scanHistory(scan func(dest ...any) error) (model.HistoryRecord, error) {
	var rec model.HistoryRecord
	var answers string
	if err := scan(&rec.ID, &rec.ParticipantName, &answers, &rec.CreatedAt, &rec.Analysis); err != nil {
		return model.HistoryRecord{}, err
	}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return model.HistoryRecord{}, fmt.Errorf("unmarshal answers for %s: %w", rec.ID, err)
	}
	return rec, nil
}
