// Package assessment implements the forced-choice answer sheet, the scorer
// and the trait evidence selector.
package assessment

import (
	"errors"

	"github.com/discfacil/discfacil/internal/catalog"
	"github.com/discfacil/discfacil/internal/model"
)

var (
	// ErrUnknownQuestion means the question id belongs to no block.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrInvalidRank means the rank is outside 1..4.
	ErrInvalidRank = errors.New("rank out of range")
	// ErrRankTaken means another question in the same block already holds
	// the rank. Each rank is usable only once per block.
	ErrRankTaken = errors.New("rank already used in this block")
)

// Outcome describes what a Set call did to the sheet.
type Outcome int

const (
	// OutcomeSet means the rank was recorded for the question.
	OutcomeSet Outcome = iota
	// OutcomeCleared means the existing identical answer was toggled off.
	OutcomeCleared
)

// Sheet is the forced-choice answer state for one questionnaire run.
// Each block moves from unanswered through partial to complete; a complete
// block's four ranks form a permutation of 1..4 because Set rejects reuse
// of a rank within a block.
type Sheet struct {
	cat     *catalog.Catalog
	answers model.Answers
}

// NewSheet builds a sheet over the catalog, seeded with existing answers.
// The answer map is cloned; the caller's copy is never mutated.
func NewSheet(cat *catalog.Catalog, answers model.Answers) *Sheet {
	if answers == nil {
		answers = model.Answers{}
	}
	return &Sheet{cat: cat, answers: answers.Clone()}
}

// Set records rank for the question, toggling the answer off when the
// question already holds exactly that rank. Setting a different rank for an
// already-answered question overwrites it. A rank held by another question
// in the same block is rejected with ErrRankTaken and the sheet is left
// unchanged.
func (s *Sheet) Set(questionID int64, rank int) (Outcome, error) {
	blockIdx, ok := s.cat.BlockIndexOf(questionID)
	if !ok {
		return 0, ErrUnknownQuestion
	}
	if rank < model.RankMin || rank > model.RankMax {
		return 0, ErrInvalidRank
	}

	if cur, answered := s.answers[questionID]; answered && cur == rank {
		delete(s.answers, questionID)
		return OutcomeCleared, nil
	}

	for _, q := range s.cat.Blocks()[blockIdx].Questions {
		if q.ID == questionID {
			continue
		}
		if r, answered := s.answers[q.ID]; answered && r == rank {
			return 0, ErrRankTaken
		}
	}

	s.answers[questionID] = rank
	return OutcomeSet, nil
}

// Rank returns the recorded rank for a question, if any.
func (s *Sheet) Rank(questionID int64) (int, bool) {
	r, ok := s.answers[questionID]
	return r, ok
}

// BlockComplete reports whether every question in the block at index i has
// an answer. Completion is a presence check; the permutation property
// follows from Set's rejection rule.
func (s *Sheet) BlockComplete(i int) bool {
	blocks := s.cat.Blocks()
	if i < 0 || i >= len(blocks) {
		return false
	}
	for _, q := range blocks[i].Questions {
		if _, ok := s.answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Complete reports whether every block is complete.
func (s *Sheet) Complete() bool {
	for i := range s.cat.Blocks() {
		if !s.BlockComplete(i) {
			return false
		}
	}
	return true
}

// AnsweredCount returns how many catalog questions have a recorded answer.
func (s *Sheet) AnsweredCount() int {
	count := 0
	for _, q := range s.cat.Questions() {
		if _, ok := s.answers[q.ID]; ok {
			count++
		}
	}
	return count
}

// Answers returns a copy of the recorded answers.
func (s *Sheet) Answers() model.Answers {
	return s.answers.Clone()
}
