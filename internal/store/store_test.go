package store

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/discfacil/discfacil/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateSession("Maria")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	sess, err := s.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.ParticipantName != "Maria" {
		t.Errorf("participant = %q, want Maria", sess.ParticipantName)
	}
	if sess.Status != model.StatusInProgress {
		t.Errorf("status = %q, want in_progress", sess.Status)
	}
	if sess.CurrentBlock != 0 {
		t.Errorf("current block = %d, want 0", sess.CurrentBlock)
	}
	if sess.FinishedAt != nil {
		t.Error("new session should have no finish time")
	}

	if err := s.SetSessionBlock(id, 3); err != nil {
		t.Fatalf("SetSessionBlock: %v", err)
	}
	sess, err = s.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.CurrentBlock != 3 {
		t.Errorf("current block = %d, want 3", sess.CurrentBlock)
	}

	if err := s.FinishSession(id); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	sess, err = s.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if sess.Status != model.StatusFinished {
		t.Errorf("status = %q, want finished", sess.Status)
	}
	if sess.FinishedAt == nil {
		t.Error("finished session should have a finish time")
	}

	// Not found.
	if _, err := s.GetSession(9999); err != sql.ErrNoRows {
		t.Errorf("GetSession(9999) error = %v, want ErrNoRows", err)
	}
}

func TestAnswerUpsertAndDelete(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateSession("Maria")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	answers, err := s.GetAnswers(id)
	if err != nil {
		t.Fatalf("GetAnswers: %v", err)
	}
	if len(answers) != 0 {
		t.Fatalf("expected no answers, got %v", answers)
	}

	if err := s.UpsertAnswer(id, 1, 4); err != nil {
		t.Fatalf("UpsertAnswer: %v", err)
	}
	if err := s.UpsertAnswer(id, 2, 3); err != nil {
		t.Fatalf("UpsertAnswer: %v", err)
	}
	// Overwrite.
	if err := s.UpsertAnswer(id, 1, 2); err != nil {
		t.Fatalf("UpsertAnswer overwrite: %v", err)
	}

	answers, err = s.GetAnswers(id)
	if err != nil {
		t.Fatalf("GetAnswers: %v", err)
	}
	if answers[1] != 2 || answers[2] != 3 {
		t.Errorf("answers = %v, want {1:2 2:3}", answers)
	}

	if err := s.DeleteAnswer(id, 1); err != nil {
		t.Fatalf("DeleteAnswer: %v", err)
	}
	answers, err = s.GetAnswers(id)
	if err != nil {
		t.Fatalf("GetAnswers: %v", err)
	}
	if _, ok := answers[1]; ok {
		t.Error("deleted answer still present")
	}
	if len(answers) != 1 {
		t.Errorf("answers = %v, want one entry", answers)
	}

	// Answers are scoped per session.
	other, err := s.CreateSession("João")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	otherAnswers, err := s.GetAnswers(other)
	if err != nil {
		t.Fatalf("GetAnswers: %v", err)
	}
	if len(otherAnswers) != 0 {
		t.Errorf("other session sees answers %v", otherAnswers)
	}
}

func TestHistorySaveAndList(t *testing.T) {
	s := newTestStore(t)

	answers := model.Answers{1: 4, 2: 3, 3: 2, 4: 1}
	rec, err := s.SaveHistory("Maria", answers)
	if err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	if rec.ID == "" {
		t.Error("record should have an id")
	}

	got, err := s.GetHistory(rec.ID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if got == nil {
		t.Fatal("record not found")
	}
	if got.ParticipantName != "Maria" {
		t.Errorf("participant = %q, want Maria", got.ParticipantName)
	}
	for id, rank := range answers {
		if got.Answers[id] != rank {
			t.Errorf("answer %d = %d, want %d", id, got.Answers[id], rank)
		}
	}

	// Unknown ids return nil without error.
	missing, err := s.GetHistory("nope")
	if err != nil {
		t.Fatalf("GetHistory(nope): %v", err)
	}
	if missing != nil {
		t.Error("unknown id should return nil")
	}

	if _, err := s.SaveHistory("João", model.Answers{1: 1}); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	records, err := s.ListHistory()
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ParticipantName != "João" {
		t.Errorf("newest record first: got %q", records[0].ParticipantName)
	}
}

func TestHistoryCap(t *testing.T) {
	s := newTestStore(t)

	var lastID string
	for i := 0; i < historyCap+5; i++ {
		rec, err := s.SaveHistory(fmt.Sprintf("p%d", i), model.Answers{1: 1})
		if err != nil {
			t.Fatalf("SaveHistory %d: %v", i, err)
		}
		lastID = rec.ID
	}

	count, err := s.HistoryCount()
	if err != nil {
		t.Fatalf("HistoryCount: %v", err)
	}
	if count != historyCap {
		t.Errorf("count = %d, want %d", count, historyCap)
	}

	// The newest entry survives, the oldest are pruned.
	records, err := s.ListHistory()
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if records[0].ID != lastID {
		t.Error("newest record should be first after pruning")
	}
	for _, rec := range records {
		if rec.ParticipantName == "p0" || rec.ParticipantName == "p4" {
			t.Errorf("pruned record %q still present", rec.ParticipantName)
		}
	}
}

func TestHistoryAnalysisAndClear(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.SaveHistory("Maria", model.Answers{1: 1})
	if err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	if rec.Analysis != "" {
		t.Error("new record should have no analysis")
	}

	if err := s.SetAnalysis(rec.ID, "### Síntese\n- texto"); err != nil {
		t.Fatalf("SetAnalysis: %v", err)
	}
	got, err := s.GetHistory(rec.ID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if got.Analysis != "### Síntese\n- texto" {
		t.Errorf("analysis = %q", got.Analysis)
	}

	if err := s.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	count, err := s.HistoryCount()
	if err != nil {
		t.Fatalf("HistoryCount: %v", err)
	}
	if count != 0 {
		t.Errorf("count after clear = %d, want 0", count)
	}
}

func TestUsersAndAuthSessions(t *testing.T) {
	s := newTestStore(t)

	count, err := s.UserCount()
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 users, got %d", count)
	}

	id, err := s.CreateUser(model.User{
		Username:     "admin",
		DisplayName:  "Administrator",
		PasswordHash: "hash",
		Role:         model.UserRoleAdmin,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u, err := s.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if u == nil || u.ID != id || u.Role != model.UserRoleAdmin {
		t.Errorf("user = %+v", u)
	}

	missing, err := s.GetUserByUsername("nobody")
	if err != nil {
		t.Fatalf("GetUserByUsername(nobody): %v", err)
	}
	if missing != nil {
		t.Error("unknown username should return nil")
	}

	token, err := s.CreateAuthSession(id)
	if err != nil {
		t.Fatalf("CreateAuthSession: %v", err)
	}
	sess, err := s.GetAuthSession(token)
	if err != nil {
		t.Fatalf("GetAuthSession: %v", err)
	}
	if sess == nil || sess.UserID != id {
		t.Errorf("auth session = %+v", sess)
	}

	if err := s.DeleteAuthSession(token); err != nil {
		t.Fatalf("DeleteAuthSession: %v", err)
	}
	sess, err = s.GetAuthSession(token)
	if err != nil {
		t.Fatalf("GetAuthSession after delete: %v", err)
	}
	if sess != nil {
		t.Error("deleted session should be gone")
	}
}

func TestExpiredAuthSession(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateUser(model.User{Username: "u", Role: model.UserRoleViewer, Active: true})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	token, err := s.CreateAuthSession(id)
	if err != nil {
		t.Fatalf("CreateAuthSession: %v", err)
	}

	// Force expiry in the past.
	if _, err := s.db.Exec(
		`UPDATE auth_sessions SET expires_at = ? WHERE id = ?`, time.Now().Add(-time.Hour), token,
	); err != nil {
		t.Fatalf("expire session: %v", err)
	}

	sess, err := s.GetAuthSession(token)
	if err != nil {
		t.Fatalf("GetAuthSession: %v", err)
	}
	if sess != nil {
		t.Error("expired session should return nil")
	}
}

func TestExportHistory(t *testing.T) {
	s := newTestStore(t)

	questions := []model.Question{
		{ID: 1, Traits: "A", Profile: model.ProfileD},
		{ID: 2, Traits: "B", Profile: model.ProfileI},
		{ID: 3, Traits: "C", Profile: model.ProfileS},
		{ID: 4, Traits: "D", Profile: model.ProfileC},
	}

	if _, err := s.SaveHistory("Maria", model.Answers{1: 4, 2: 3, 3: 2, 4: 1}); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}

	records, err := s.ExportHistory(questions)
	if err != nil {
		t.Fatalf("ExportHistory: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.ParticipantName != "Maria" {
		t.Errorf("participant = %q", rec.ParticipantName)
	}
	if len(rec.Scores) != 4 {
		t.Fatalf("expected 4 scores, got %d", len(rec.Scores))
	}
	if rec.Scores[0].Profile != model.ProfileD || rec.Scores[0].Total != 4 {
		t.Errorf("top score = %+v, want D with 4", rec.Scores[0])
	}
}
