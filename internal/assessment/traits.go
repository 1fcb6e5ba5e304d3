package assessment

import "github.com/discfacil/discfacil/internal/model"

// SelectTraits returns the trait text of every question whose profile is
// profile and whose recorded answer is exactly rank, in question order.
// An empty result is valid and expected.
func SelectTraits(profile model.ProfileType, rank int, questions []model.Question, answers model.Answers) []string {
	var traits []string
	for _, q := range questions {
		if q.Profile != profile {
			continue
		}
		if r, ok := answers[q.ID]; ok && r == rank {
			traits = append(traits, q.Traits)
		}
	}
	return traits
}

// Evidence groups the trait selections the report sections are built from:
// traits rated "very much like me" for the dominant profile, "somewhat like
// me" for the secondary, and "not at all like me" for the two weakest
// profiles combined (concatenated, not deduplicated).
type Evidence struct {
	DominantHigh    []string
	SecondaryMedium []string
	LowCombined     []string
}

// SelectEvidence extracts the report evidence for ranked scores. Fewer than
// four scores yields empty evidence; the composer rejects that case itself.
func SelectEvidence(scores []model.Score, questions []model.Question, answers model.Answers) Evidence {
	if len(scores) < 4 {
		return Evidence{}
	}
	ev := Evidence{
		DominantHigh:    SelectTraits(scores[0].Profile, model.RankMax, questions, answers),
		SecondaryMedium: SelectTraits(scores[1].Profile, 3, questions, answers),
	}
	for _, s := range scores[2:4] {
		ev.LowCombined = append(ev.LowCombined, SelectTraits(s.Profile, model.RankMin, questions, answers)...)
	}
	return ev
}
