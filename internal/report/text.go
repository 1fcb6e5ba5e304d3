package report

import (
	"strings"

	"github.com/discfacil/discfacil/internal/assessment"
	"github.com/discfacil/discfacil/internal/model"
)

// Rank labels are the stable export contract: the exact wording shown for
// each answer option, a bijection over ranks 1..4.
var rankLabels = map[int]string{
	4: "Muito a ver comigo",
	3: "Mais ou menos a ver comigo",
	2: "Um pouco a ver comigo",
	1: "Nada a ver comigo",
}

// RankLabel returns the fixed wording for a rank, or "" for an unknown rank.
func RankLabel(rank int) string {
	return rankLabels[rank]
}

// RankForLabel is the inverse of RankLabel.
func RankForLabel(label string) (int, bool) {
	for rank, l := range rankLabels {
		if l == label {
			return rank, true
		}
	}
	return 0, false
}

// transcriptHeader separates the report body from the answer transcript in
// the shareable export.
const transcriptHeader = "--- MINHAS RESPOSTAS ---"

// ShareText renders the full plain-text export: the report followed by a
// verbatim transcript of every answered question and its answer wording.
// It is derived from the same scores and evidence as the structured
// document, never composed independently.
func ShareText(participantName string, scores []model.Score, questions []model.Question, answers model.Answers) (string, error) {
	ev := assessment.SelectEvidence(scores, questions, answers)
	doc, err := Compose(participantName, scores, ev)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(doc.PlainText())
	sb.WriteString("\n" + transcriptHeader + "\n")
	for _, q := range questions {
		if rank, ok := answers[q.ID]; ok {
			if label := RankLabel(rank); label != "" {
				sb.WriteString("- " + q.Traits + ": " + label + "\n")
			}
		}
	}
	return sb.String(), nil
}
