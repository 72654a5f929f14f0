package sentiment

import (
	"testing"

	"go.uber.org/zap"
)

func TestRatingAnalyzer_PureFunctionOfRating(t *testing.T) {
	// 降级实现的契约：输出只取决于 rating，与评论内容无关
	a := &RatingAnalyzer{}
	comments := []string{"", "terrible product", "absolutely amazing", "中文评论"}
	for rating := 1; rating <= 5; rating++ {
		base := a.Score(comments[0], rating)
		for _, c := range comments[1:] {
			got := a.Score(c, rating)
			if got != base {
				t.Errorf("rating %d: result varies with comment %q: %+v vs %+v", rating, c, got, base)
			}
		}
	}
}

func TestRatingAnalyzer_ScoreAndLabel(t *testing.T) {
	a := &RatingAnalyzer{}
	tests := []struct {
		rating    int
		wantScore float64
		wantLabel string
	}{
		{1, -1.0, LabelNegative},
		{2, -0.5, LabelNegative},
		{3, 0.0, LabelNeutral},
		{4, 0.5, LabelPositive},
		{5, 1.0, LabelPositive},
	}
	for _, tt := range tests {
		got := a.Score("ignored", tt.rating)
		if got.Score != tt.wantScore {
			t.Errorf("rating %d: score = %v, want %v", tt.rating, got.Score, tt.wantScore)
		}
		if got.Label != tt.wantLabel {
			t.Errorf("rating %d: label = %q, want %q", tt.rating, got.Label, tt.wantLabel)
		}
		if got.Consistency != 1.0 {
			t.Errorf("rating %d: consistency = %v, want 1.0", tt.rating, got.Consistency)
		}
	}
}

func TestLexiconAnalyzer_EmptyCommentFallsBackToRating(t *testing.T) {
	a := &LexiconAnalyzer{}
	for _, comment := range []string{"", "   ", "\t\n"} {
		got := a.Score(comment, 5)
		want := ratingResult(5)
		if got != want {
			t.Errorf("empty comment %q: got %+v, want rating-derived %+v", comment, got, want)
		}
	}
}

func TestLexiconAnalyzer_Polarity(t *testing.T) {
	a := &LexiconAnalyzer{}
	tests := []struct {
		name      string
		comment   string
		rating    int
		wantLabel string
	}{
		{
			name:      "clearly positive",
			comment:   "great quality, love it, highly recommend",
			rating:    5,
			wantLabel: LabelPositive,
		},
		{
			name:      "clearly negative",
			comment:   "terrible quality, broken on arrival, waste of money",
			rating:    1,
			wantLabel: LabelNegative,
		},
		{
			name:      "no sentiment words",
			comment:   "arrived tuesday in a cardboard box",
			rating:    3,
			wantLabel: LabelNeutral,
		},
		{
			name:      "negation flips polarity",
			comment:   "not good at all",
			rating:    2,
			wantLabel: LabelNegative,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Score(tt.comment, tt.rating)
			if got.Label != tt.wantLabel {
				t.Errorf("label = %q (score %v), want %q", got.Label, got.Score, tt.wantLabel)
			}
			if got.Score < -1 || got.Score > 1 {
				t.Errorf("score %v out of [-1, 1]", got.Score)
			}
			if got.Consistency < 0 || got.Consistency > 1 {
				t.Errorf("consistency %v out of [0, 1]", got.Consistency)
			}
		})
	}
}

func TestConsistency(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		score  float64
		want   float64
	}{
		{name: "perfect agreement high", rating: 5, score: 1.0, want: 1.0},
		{name: "perfect agreement low", rating: 1, score: -1.0, want: 1.0},
		{name: "total disagreement", rating: 5, score: -1.0, want: 0.0},
		{name: "neutral midpoint", rating: 3, score: 0.0, want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Consistency(tt.rating, tt.score)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Consistency(%d, %v) = %v, want %v", tt.rating, tt.score, got, tt.want)
			}
		})
	}
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.06, LabelPositive},
		{0.05, LabelNeutral},
		{0.0, LabelNeutral},
		{-0.05, LabelNeutral},
		{-0.06, LabelNegative},
	}
	for _, tt := range tests {
		if got := classify(tt.score); got != tt.want {
			t.Errorf("classify(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestNew_SelectsLexiconWhenAvailable(t *testing.T) {
	a := New(zap.NewNop())
	if a.Name() != "sentiment.lexicon" {
		t.Fatalf("expected lexicon analyzer, got %s", a.Name())
	}
}
