package assessment

import (
	"sort"

	"github.com/discfacil/discfacil/internal/model"
)

// ScoreAnswers reduces an answer map into the four per-profile totals,
// sorted descending. Questions without a recorded answer contribute zero,
// so the function is total over any answer map, including an empty one.
// Ties keep the fixed D, I, S, C enumeration order (stable sort over
// model.ProfileOrder), which is the documented tie-break rule: identical
// inputs always produce identical output.
func ScoreAnswers(answers model.Answers, questions []model.Question) []model.Score {
	totals := make(map[model.ProfileType]int, 4)
	for _, q := range questions {
		if rank, ok := answers[q.ID]; ok {
			totals[q.Profile] += rank
		}
	}

	scores := make([]model.Score, 0, len(model.ProfileOrder))
	for _, p := range model.ProfileOrder {
		scores = append(scores, model.Score{Profile: p, Total: totals[p]})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Total > scores[j].Total
	})
	return scores
}

// TotalRankMass sums every recorded rank. For any answer map it equals the
// sum of all profile totals produced by ScoreAnswers over the same
// questions, as long as every answered question is in the question list.
func TotalRankMass(answers model.Answers, questions []model.Question) int {
	sum := 0
	for _, q := range questions {
		if rank, ok := answers[q.ID]; ok {
			sum += rank
		}
	}
	return sum
}
