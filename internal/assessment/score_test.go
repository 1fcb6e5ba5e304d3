package assessment

import (
	"reflect"
	"testing"

	"github.com/discfacil/discfacil/internal/catalog"
	"github.com/discfacil/discfacil/internal/model"
)

// answersByProfile fills a complete answer sheet assigning the same rank to
// every question of a profile in every block.
func answersByProfile(t *testing.T, cat *catalog.Catalog, ranks map[model.ProfileType]int) model.Answers {
	t.Helper()
	answers := model.Answers{}
	for _, q := range cat.Questions() {
		rank, ok := ranks[q.Profile]
		if !ok {
			t.Fatalf("no rank for profile %s", q.Profile)
		}
		answers[q.ID] = rank
	}
	return answers
}

func TestScoreAnswersFullBank(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	if cat.NumBlocks() != 9 {
		t.Fatalf("expected 9 blocks, got %d", cat.NumBlocks())
	}

	// Rank D highest in every block: 9 blocks give D=36, I=27, S=18, C=9.
	answers := answersByProfile(t, cat, map[model.ProfileType]int{
		model.ProfileD: 4,
		model.ProfileI: 3,
		model.ProfileS: 2,
		model.ProfileC: 1,
	})

	got := ScoreAnswers(answers, cat.Questions())
	want := []model.Score{
		{Profile: model.ProfileD, Total: 36},
		{Profile: model.ProfileI, Total: 27},
		{Profile: model.ProfileS, Total: 18},
		{Profile: model.ProfileC, Total: 9},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScoreAnswers = %v, want %v", got, want)
	}
}

func TestScoreAnswersTieBreak(t *testing.T) {
	cat := testCatalog(t)

	tests := []struct {
		name    string
		ranks   map[model.ProfileType]int
		want    []model.ProfileType
	}{
		{
			"all tied keeps enumeration order",
			map[model.ProfileType]int{model.ProfileD: 2, model.ProfileI: 2, model.ProfileS: 2, model.ProfileC: 2},
			[]model.ProfileType{model.ProfileD, model.ProfileI, model.ProfileS, model.ProfileC},
		},
		{
			"partial tie",
			map[model.ProfileType]int{model.ProfileD: 1, model.ProfileI: 4, model.ProfileS: 4, model.ProfileC: 1},
			[]model.ProfileType{model.ProfileI, model.ProfileS, model.ProfileD, model.ProfileC},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := model.Answers{}
			for _, q := range cat.Questions() {
				answers[q.ID] = tt.ranks[q.Profile]
			}
			scores := ScoreAnswers(answers, cat.Questions())
			var got []model.ProfileType
			for _, s := range scores {
				got = append(got, s.Profile)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("profile order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreAnswersEmpty(t *testing.T) {
	cat := testCatalog(t)

	scores := ScoreAnswers(model.Answers{}, cat.Questions())
	if len(scores) != 4 {
		t.Fatalf("expected 4 scores, got %d", len(scores))
	}
	for i, s := range scores {
		if s.Total != 0 {
			t.Errorf("score %d total = %d, want 0", i, s.Total)
		}
		if s.Profile != model.ProfileOrder[i] {
			t.Errorf("score %d profile = %s, want %s", i, s.Profile, model.ProfileOrder[i])
		}
	}
}

func TestScoreAnswersPartial(t *testing.T) {
	cat := testCatalog(t)

	// Only one block answered; unanswered questions contribute zero.
	answers := model.Answers{1: 4, 2: 3, 3: 2, 4: 1}
	scores := ScoreAnswers(answers, cat.Questions())
	if scores[0].Profile != model.ProfileI || scores[0].Total != 4 {
		t.Errorf("top score = %+v, want I with 4", scores[0])
	}

	sum := 0
	for _, s := range scores {
		sum += s.Total
	}
	if mass := TotalRankMass(answers, cat.Questions()); sum != mass {
		t.Errorf("score totals sum to %d, rank mass is %d", sum, mass)
	}
}

func TestScoreAnswersDeterministic(t *testing.T) {
	cat := testCatalog(t)
	answers := model.Answers{1: 2, 2: 2, 5: 3, 6: 3}

	first := ScoreAnswers(answers, cat.Questions())
	for i := 0; i < 10; i++ {
		if got := ScoreAnswers(answers, cat.Questions()); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %v, first run produced %v", i, got, first)
		}
	}
}
