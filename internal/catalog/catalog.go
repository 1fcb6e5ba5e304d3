// Package catalog holds the immutable question bank: ordered blocks of four
// trait questions, one question per profile in every block.
package catalog

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/discfacil/discfacil/internal/model"
)

//go:embed questions/*.json
var bankFS embed.FS

const defaultBank = "questions/disc_pt.json"

// Catalog is a validated, immutable question bank.
type Catalog struct {
	blocks  []model.Block
	byID    map[int64]model.Question
	blockOf map[int64]int // question id -> block index
	version string
}

// Default loads the embedded question bank.
func Default() (*Catalog, error) {
	data, err := bankFS.ReadFile(defaultBank)
	if err != nil {
		return nil, fmt.Errorf("read embedded bank: %w", err)
	}
	return Parse(data)
}

// LoadFile loads a question bank from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Parse parses and validates a question bank. The catalog version is the
// SHA-256 of the raw bytes, so identical content always yields the same
// version string.
func Parse(data []byte) (*Catalog, error) {
	var blocks []model.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	c := &Catalog{
		blocks:  blocks,
		byID:    make(map[int64]model.Question),
		blockOf: make(map[int64]int),
	}

	for i, b := range blocks {
		if len(b.Questions) != 4 {
			return nil, fmt.Errorf("block %d: expected 4 questions, got %d", b.ID, len(b.Questions))
		}
		seen := make(map[model.ProfileType]bool, 4)
		for _, q := range b.Questions {
			if q.ID <= 0 {
				return nil, fmt.Errorf("block %d: question id %d is not positive", b.ID, q.ID)
			}
			if q.Traits == "" {
				return nil, fmt.Errorf("question %d: empty traits", q.ID)
			}
			if !q.Profile.Valid() {
				return nil, fmt.Errorf("question %d: unknown profile %q", q.ID, q.Profile)
			}
			if seen[q.Profile] {
				return nil, fmt.Errorf("block %d: profile %s appears twice", b.ID, q.Profile)
			}
			seen[q.Profile] = true
			if _, dup := c.byID[q.ID]; dup {
				return nil, fmt.Errorf("question id %d appears in more than one block", q.ID)
			}
			c.byID[q.ID] = q
			c.blockOf[q.ID] = i
		}
	}

	sum := sha256.Sum256(data)
	c.version = hex.EncodeToString(sum[:])
	return c, nil
}

// Blocks returns the ordered blocks. Callers must not mutate the result.
func (c *Catalog) Blocks() []model.Block {
	return c.blocks
}

// NumBlocks returns the number of blocks.
func (c *Catalog) NumBlocks() int {
	return len(c.blocks)
}

// NumQuestions returns the total question count.
func (c *Catalog) NumQuestions() int {
	return len(c.byID)
}

// Questions returns every question in block order.
func (c *Catalog) Questions() []model.Question {
	out := make([]model.Question, 0, len(c.byID))
	for _, b := range c.blocks {
		out = append(out, b.Questions...)
	}
	return out
}

// Question returns the question with the given id.
func (c *Catalog) Question(id int64) (model.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// BlockIndexOf returns the index of the block containing the question.
func (c *Catalog) BlockIndexOf(questionID int64) (int, bool) {
	i, ok := c.blockOf[questionID]
	return i, ok
}

// Version is the content hash of the bank, used for cache keying.
func (c *Catalog) Version() string {
	return c.version
}
