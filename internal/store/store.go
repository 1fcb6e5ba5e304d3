// Package store persists assessment sessions, answers and finished-test
// history in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/discfacil/discfacil/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		participant_name TEXT NOT NULL,
		current_block INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'in_progress',
		started_at DATETIME NOT NULL,
		finished_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS session_answers (
		session_id INTEGER NOT NULL,
		question_id INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		PRIMARY KEY (session_id, question_id),
		FOREIGN KEY (session_id) REFERENCES sessions(id)
	);

	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		participant_name TEXT NOT NULL,
		answers TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		analysis TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS auth_sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateSession starts a questionnaire session for a participant.
func (s *Store) CreateSession(participantName string) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions (participant_name, current_block, status, started_at) VALUES (?, 0, 'in_progress', ?)`,
		participantName, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetSession returns a session by ID.
func (s *Store) GetSession(id int64) (model.Session, error) {
	var sess model.Session
	err := s.db.QueryRow(
		`SELECT id, participant_name, current_block, status, started_at, finished_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.ParticipantName, &sess.CurrentBlock, &sess.Status, &sess.StartedAt, &sess.FinishedAt)
	return sess, err
}

// SetSessionBlock moves the session's navigation cursor.
func (s *Store) SetSessionBlock(id int64, block int) error {
	_, err := s.db.Exec(`UPDATE sessions SET current_block = ? WHERE id = ?`, block, id)
	return err
}

// FinishSession marks the session finished.
func (s *Store) FinishSession(id int64) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET status = ?, finished_at = ? WHERE id = ?`,
		model.StatusFinished, time.Now(), id,
	)
	return err
}

// UpsertAnswer records (or overwrites) the rank for a question in a session.
func (s *Store) UpsertAnswer(sessionID, questionID int64, rank int) error {
	_, err := s.db.Exec(
		`INSERT INTO session_answers (session_id, question_id, rank)
		 VALUES (?, ?, ?)
		 ON CONFLICT(session_id, question_id) DO UPDATE SET rank = ?`,
		sessionID, questionID, rank, rank,
	)
	return err
}

// DeleteAnswer removes a toggled-off answer.
func (s *Store) DeleteAnswer(sessionID, questionID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM session_answers WHERE session_id = ? AND question_id = ?`,
		sessionID, questionID,
	)
	return err
}

// GetAnswers returns the answer map recorded for a session.
func (s *Store) GetAnswers(sessionID int64) (model.Answers, error) {
	rows, err := s.db.Query(
		`SELECT question_id, rank FROM session_answers WHERE session_id = ?`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	answers := model.Answers{}
	for rows.Next() {
		var questionID int64
		var rank int
		if err := rows.Scan(&questionID, &rank); err != nil {
			return nil, err
		}
		answers[questionID] = rank
	}
	return answers, rows.Err()
}
