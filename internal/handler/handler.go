// Package handler exposes the assessment over HTTP as a JSON API: session
// lifecycle, answer toggling, block navigation, finished-result history and
// report rendering.
package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/discfacil/discfacil/internal/assessment"
	"github.com/discfacil/discfacil/internal/catalog"
	appI18n "github.com/discfacil/discfacil/internal/i18n"
	"github.com/discfacil/discfacil/internal/llm"
	"github.com/discfacil/discfacil/internal/model"
	"github.com/discfacil/discfacil/internal/report"
	"github.com/discfacil/discfacil/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	llm    *llm.Client
	cat    *catalog.Catalog
	config model.ServerConfig
}

// New creates a new Handler.
func New(s *store.Store, l *llm.Client, cat *catalog.Catalog, cfg model.ServerConfig) (*Handler, error) {
	return &Handler{store: s, llm: l, cat: cat, config: cfg}, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/login", h.handleLogin)
	r.Post("/api/logout", h.handleLogout)

	r.Get("/api/catalog", h.handleCatalog)
	r.Get("/api/profiles", h.handleProfiles)

	r.Post("/api/sessions", h.handleCreateSession)
	r.Get("/api/sessions/{sessionID}", h.handleGetSession)
	r.Post("/api/sessions/{sessionID}/answers", h.handleAnswer)
	r.Post("/api/sessions/{sessionID}/next", h.handleNextBlock)
	r.Post("/api/sessions/{sessionID}/prev", h.handlePrevBlock)
	r.Post("/api/sessions/{sessionID}/finish", h.handleFinish)

	r.Get("/api/history", h.handleHistoryList)
	r.Get("/api/history/{recordID}", h.handleHistoryGet)
	r.Get("/api/history/{recordID}/report", h.handleHistoryReport)
	r.Get("/api/history/{recordID}/report.txt", h.handleHistoryReportText)
	r.Post("/api/history/{recordID}/analysis", h.handleAnalysis)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.With(requireRole(model.UserRoleAdmin)).Delete("/api/history", h.handleClearHistory)
		r.With(requireRole(model.UserRoleAdmin)).Get("/api/users", h.handleUsers)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	writeJSON(w, status, map[string]string{"error": appI18n.T(r.Context(), msgID)})
}

// sessionState is the full view of an in-progress session: the cursor block
// with its questions, every recorded answer and completion flags.
type sessionState struct {
	Session       model.Session `json:"session"`
	Block         model.Block   `json:"block"`
	BlockIndex    int           `json:"block_index"`
	NumBlocks     int           `json:"num_blocks"`
	Answers       model.Answers `json:"answers"`
	Answered      int           `json:"answered"`
	Total         int           `json:"total"`
	BlockComplete bool          `json:"block_complete"`
	Complete      bool          `json:"complete"`
}

func (h *Handler) sessionState(sess model.Session) (sessionState, error) {
	answers, err := h.store.GetAnswers(sess.ID)
	if err != nil {
		return sessionState{}, err
	}
	sheet := assessment.NewSheet(h.cat, answers)
	blocks := h.cat.Blocks()
	idx := sess.CurrentBlock
	if idx < 0 {
		idx = 0
	}
	if idx >= len(blocks) {
		idx = len(blocks) - 1
	}
	return sessionState{
		Session:       sess,
		Block:         blocks[idx],
		BlockIndex:    idx,
		NumBlocks:     len(blocks),
		Answers:       answers,
		Answered:      sheet.AnsweredCount(),
		Total:         h.cat.NumQuestions(),
		BlockComplete: sheet.BlockComplete(idx),
		Complete:      sheet.Complete(),
	}, nil
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) (model.Session, bool) {
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "sessionID"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return model.Session{}, false
	}
	sess, err := h.store.GetSession(sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, r, http.StatusNotFound, "SessionNotFound")
		return model.Session{}, false
	}
	if err != nil {
		slog.Error("get session", "session_id", sessionID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return model.Session{}, false
	}
	return sess, true
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version": h.cat.Version(),
		"blocks":  h.cat.Blocks(),
	})
}

func (h *Handler) handleProfiles(w http.ResponseWriter, r *http.Request) {
	type profileView struct {
		Profile model.ProfileType `json:"profile"`
		report.ProfileDetails
	}
	views := make([]profileView, 0, len(model.ProfileOrder))
	for _, p := range model.ProfileOrder {
		details, ok := report.Details(p)
		if !ok {
			continue
		}
		views = append(views, profileView{Profile: p, ProfileDetails: details})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParticipantName string `json:"participant_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}
	name := strings.TrimSpace(req.ParticipantName)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "ParticipantNameRequired")
		return
	}

	sessionID, err := h.store.CreateSession(name)
	if err != nil {
		slog.Error("create session", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	sess, err := h.store.GetSession(sessionID)
	if err != nil {
		slog.Error("get session", "session_id", sessionID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	state, err := h.sessionState(sess)
	if err != nil {
		slog.Error("session state", "session_id", sessionID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	state, err := h.sessionState(sess)
	if err != nil {
		slog.Error("session state", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	if sess.Status != model.StatusInProgress {
		writeError(w, r, http.StatusConflict, "SessionFinished")
		return
	}

	var req struct {
		QuestionID int64 `json:"question_id"`
		Rank       int   `json:"rank"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "InvalidRequest")
		return
	}

	answers, err := h.store.GetAnswers(sess.ID)
	if err != nil {
		slog.Error("get answers", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	sheet := assessment.NewSheet(h.cat, answers)
	outcome, err := sheet.Set(req.QuestionID, req.Rank)
	switch {
	case errors.Is(err, assessment.ErrUnknownQuestion):
		writeError(w, r, http.StatusBadRequest, "UnknownQuestion")
		return
	case errors.Is(err, assessment.ErrInvalidRank):
		writeError(w, r, http.StatusBadRequest, "InvalidRank")
		return
	case errors.Is(err, assessment.ErrRankTaken):
		writeError(w, r, http.StatusConflict, "RankTaken")
		return
	case err != nil:
		slog.Error("set answer", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	if outcome == assessment.OutcomeCleared {
		err = h.store.DeleteAnswer(sess.ID, req.QuestionID)
	} else {
		err = h.store.UpsertAnswer(sess.ID, req.QuestionID, req.Rank)
	}
	if err != nil {
		slog.Error("persist answer", "session_id", sess.ID, "question_id", req.QuestionID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	state, err := h.sessionState(sess)
	if err != nil {
		slog.Error("session state", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleNextBlock(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	if sess.Status != model.StatusInProgress {
		writeError(w, r, http.StatusConflict, "SessionFinished")
		return
	}

	answers, err := h.store.GetAnswers(sess.ID)
	if err != nil {
		slog.Error("get answers", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	sheet := assessment.NewSheet(h.cat, answers)
	if !sheet.BlockComplete(sess.CurrentBlock) {
		writeError(w, r, http.StatusConflict, "BlockIncomplete")
		return
	}

	next := sess.CurrentBlock + 1
	if next > h.cat.NumBlocks()-1 {
		next = h.cat.NumBlocks() - 1
	}
	if err := h.store.SetSessionBlock(sess.ID, next); err != nil {
		slog.Error("set session block", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	sess.CurrentBlock = next

	state, err := h.sessionState(sess)
	if err != nil {
		slog.Error("session state", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handlePrevBlock(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	if sess.Status != model.StatusInProgress {
		writeError(w, r, http.StatusConflict, "SessionFinished")
		return
	}

	prev := sess.CurrentBlock - 1
	if prev < 0 {
		prev = 0
	}
	if err := h.store.SetSessionBlock(sess.ID, prev); err != nil {
		slog.Error("set session block", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	sess.CurrentBlock = prev

	state, err := h.sessionState(sess)
	if err != nil {
		slog.Error("session state", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.getSession(w, r)
	if !ok {
		return
	}
	if sess.Status != model.StatusInProgress {
		writeError(w, r, http.StatusConflict, "SessionFinished")
		return
	}

	answers, err := h.store.GetAnswers(sess.ID)
	if err != nil {
		slog.Error("get answers", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	sheet := assessment.NewSheet(h.cat, answers)
	if !sheet.Complete() {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": appI18n.Td(r.Context(), "AssessmentIncomplete", map[string]any{
				"Answered": sheet.AnsweredCount(),
				"Total":    h.cat.NumQuestions(),
			}),
		})
		return
	}

	questions := h.cat.Questions()
	scores := assessment.ScoreAnswers(answers, questions)
	ev := assessment.SelectEvidence(scores, questions, answers)
	doc, err := report.Compose(sess.ParticipantName, scores, ev)
	if err != nil {
		slog.Error("compose report", "session_id", sess.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "ReportUnavailable")
		return
	}

	resp := map[string]any{
		"scores": scores,
		"report": doc,
	}

	// A failed snapshot never withholds the computed report. The session
	// stays in progress so finishing can be retried once the store recovers.
	record, err := h.store.SaveHistory(sess.ParticipantName, answers)
	if err != nil {
		slog.Error("save history skipped", "session_id", sess.ID, "error", err)
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp["record"] = record

	if err := h.store.FinishSession(sess.ID); err != nil {
		slog.Error("finish session", "session_id", sess.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, resp)
}
