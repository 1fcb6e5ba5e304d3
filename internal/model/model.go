package model

import (
	"context"
	"time"
)

// ProfileType is one of the four behavioral dimensions the assessment measures.
type ProfileType string

const (
	ProfileD ProfileType = "D"
	ProfileI ProfileType = "I"
	ProfileS ProfileType = "S"
	ProfileC ProfileType = "C"
)

// ProfileOrder is the fixed enumeration order of the four profiles.
// Scoring performs a stable sort over this order, so it doubles as the
// tie-break rule when totals are equal.
var ProfileOrder = [4]ProfileType{ProfileD, ProfileI, ProfileS, ProfileC}

// Valid reports whether p is one of the four known profiles.
func (p ProfileType) Valid() bool {
	switch p {
	case ProfileD, ProfileI, ProfileS, ProfileC:
		return true
	}
	return false
}

// Rank bounds. A respondent ranks each question in a block from 1
// (weakest identification) to 4 (strongest), each value used once per block.
const (
	RankMin = 1
	RankMax = 4
)

// Question is a single group of trait adjectives tagged with a profile.
type Question struct {
	ID      int64       `json:"id"`
	Traits  string      `json:"traits"`
	Profile ProfileType `json:"profile"`
}

// Block is an ordered group of exactly four questions, one per profile,
// answered as a forced ranking.
type Block struct {
	ID        int64      `json:"id"`
	Questions []Question `json:"questions"`
}

// Answers maps a question id to the rank the respondent assigned it.
// The map is partial while the questionnaire is in progress.
type Answers map[int64]int

// Clone returns an independent copy of the answer map.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for id, rank := range a {
		out[id] = rank
	}
	return out
}

// Score is one profile's total: the sum of ranks assigned to that
// profile's questions across all blocks.
type Score struct {
	Profile ProfileType `json:"profile"`
	Total   int         `json:"total"`
}

// SessionStatus represents the status of an assessment session.
type SessionStatus string

const (
	StatusInProgress SessionStatus = "in_progress"
	StatusFinished   SessionStatus = "finished"
)

// Session is an in-progress questionnaire run for one participant.
type Session struct {
	ID              int64         `json:"id"`
	ParticipantName string        `json:"participant_name"`
	CurrentBlock    int           `json:"current_block"`
	Status          SessionStatus `json:"status"`
	StartedAt       time.Time     `json:"started_at"`
	FinishedAt      *time.Time    `json:"finished_at,omitempty"`
}

// HistoryRecord is a finished assessment snapshot. The answers are
// immutable once stored; scores and reports are recomputed on demand.
type HistoryRecord struct {
	ID              string    `json:"id"`
	ParticipantName string    `json:"participant_name"`
	Answers         Answers   `json:"answers"`
	CreatedAt       time.Time `json:"created_at"`
	Analysis        string    `json:"analysis,omitempty"`
}

// UserRole represents a user's access level.
type UserRole string

const (
	// UserRoleAdmin may administer history and users.
	UserRoleAdmin UserRole = "admin"
	// UserRoleViewer may browse history but not clear it.
	UserRoleViewer UserRole = "viewer"
)

// User represents a system user.
type User struct {
	ID           int64
	Username     string
	DisplayName  string
	PasswordHash string
	Role         UserRole
	Active       bool
	CreatedAt    time.Time
}

// AuthSession represents an authentication session.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

type userCtxKey struct{}

// ContextWithUser stores a user in the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated user from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}

// ServerConfig holds runtime server parameters set via CLI flags.
type ServerConfig struct {
	SecureCookies bool // Set Secure flag on cookies (disable for local dev)
}
