package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/discfacil/discfacil/internal/assessment"
	"github.com/discfacil/discfacil/internal/model"
	"github.com/discfacil/discfacil/internal/report"
)

// historyView is a stored result annotated with its recomputed scores.
type historyView struct {
	model.HistoryRecord
	Scores []model.Score `json:"scores"`
}

func (h *Handler) getHistoryRecord(w http.ResponseWriter, r *http.Request) (*model.HistoryRecord, bool) {
	recordID := chi.URLParam(r, "recordID")
	record, err := h.store.GetHistory(recordID)
	if err != nil {
		slog.Error("get history", "record_id", recordID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return nil, false
	}
	if record == nil {
		writeError(w, r, http.StatusNotFound, "HistoryNotFound")
		return nil, false
	}
	return record, true
}

func (h *Handler) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListHistory()
	if err != nil {
		slog.Error("list history", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}

	questions := h.cat.Questions()
	views := make([]historyView, 0, len(records))
	for _, rec := range records {
		views = append(views, historyView{
			HistoryRecord: rec,
			Scores:        assessment.ScoreAnswers(rec.Answers, questions),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	record, ok := h.getHistoryRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, historyView{
		HistoryRecord: *record,
		Scores:        assessment.ScoreAnswers(record.Answers, h.cat.Questions()),
	})
}

func (h *Handler) handleHistoryReport(w http.ResponseWriter, r *http.Request) {
	record, ok := h.getHistoryRecord(w, r)
	if !ok {
		return
	}

	questions := h.cat.Questions()
	scores := assessment.ScoreAnswers(record.Answers, questions)
	ev := assessment.SelectEvidence(scores, questions, record.Answers)
	doc, err := report.Compose(record.ParticipantName, scores, ev)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "ReportUnavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scores": scores,
		"report": doc,
	})
}

func (h *Handler) handleHistoryReportText(w http.ResponseWriter, r *http.Request) {
	record, ok := h.getHistoryRecord(w, r)
	if !ok {
		return
	}

	questions := h.cat.Questions()
	scores := assessment.ScoreAnswers(record.Answers, questions)
	text, err := report.ShareText(record.ParticipantName, scores, questions, record.Answers)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "ReportUnavailable")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("write report text", "record_id", record.ID, "error", err)
	}
}

func (h *Handler) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	record, ok := h.getHistoryRecord(w, r)
	if !ok {
		return
	}

	if record.Analysis != "" {
		writeJSON(w, http.StatusOK, map[string]string{"analysis": record.Analysis})
		return
	}
	if h.llm == nil {
		writeError(w, r, http.StatusServiceUnavailable, "AnalysisFailed")
		return
	}

	scores := assessment.ScoreAnswers(record.Answers, h.cat.Questions())
	analysis, err := h.llm.Analyze(r.Context(), record.ParticipantName, scores)
	if err != nil {
		slog.Error("analysis failed", "record_id", record.ID, "error", err)
		writeError(w, r, http.StatusBadGateway, "AnalysisFailed")
		return
	}

	if err := h.store.SetAnalysis(record.ID, analysis); err != nil {
		slog.Error("store analysis", "record_id", record.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"analysis": analysis})
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearHistory(); err != nil {
		slog.Error("clear history", "error", err)
		writeError(w, r, http.StatusInternalServerError, "InternalError")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
