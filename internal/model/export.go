package model

import "time"

// HistoryExport is the top-level JSON structure for history export.
type HistoryExport struct {
	ExportedAt     time.Time      `json:"exported_at"`
	CatalogVersion string         `json:"catalog_version"`
	Count          int            `json:"count"`
	Records        []RecordExport `json:"records"`
}

// RecordExport holds one finished assessment for export, with the
// scores recomputed from the stored answer snapshot.
type RecordExport struct {
	ID              string    `json:"id"`
	ParticipantName string    `json:"participant_name"`
	CreatedAt       time.Time `json:"created_at"`
	Scores          []Score   `json:"scores"`
	Answers         Answers   `json:"answers"`
	Analysis        string    `json:"analysis,omitempty"`
}
