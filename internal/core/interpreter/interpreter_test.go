package interpreter

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/platform/errors"
)

func score(label string, p float64) domain.ClassScore {
	return domain.NewClassScore(label, p)
}

func TestInterpret_EmptyInput(t *testing.T) {
	for _, in := range [][]domain.ClassScore{nil, {}} {
		_, err := Interpret(in)

		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
		assert.ErrorIs(t, err, domain.ErrEmptyScores)
	}
}

func TestInterpret_TieBreakFirstWins(t *testing.T) {
	v, err := Interpret([]domain.ClassScore{
		score("positive", 0.5),
		score("negative", 0.5),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SentimentPositive, v.Sentiment)
	assert.Equal(t, "positive", v.Label)

	v, err = Interpret([]domain.ClassScore{
		score("negative", 0.5),
		score("positive", 0.5),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SentimentNegative, v.Sentiment)
}

func TestInterpret_Stars(t *testing.T) {
	tests := []struct {
		name   string
		scores []domain.ClassScore
		stars  int
	}{
		{"negative certain gives three", []domain.ClassScore{score("negative", 1.0)}, 3},
		{"negative zero gives one", []domain.ClassScore{score("negative", 0.0)}, 1},
		{"negative below half", []domain.ClassScore{score("negative", 0.49)}, 1},
		{"negative at half", []domain.ClassScore{score("negative", 0.5)}, 2},
		{"negative high", []domain.ClassScore{score("negative", 0.97)}, 2},
		{"neutral low", []domain.ClassScore{score("neutral", 0.05)}, 3},
		{"neutral high", []domain.ClassScore{score("neutral", 0.99)}, 3},
		{"positive below threshold", []domain.ClassScore{score("positive", 0.94)}, 4},
		{"positive at threshold", []domain.ClassScore{score("positive", 0.95)}, 5},
		{"positive certain", []domain.ClassScore{score("positive", 1.0)}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Interpret(tt.scores)
			require.NoError(t, err)
			assert.Equal(t, tt.stars, v.Stars)
		})
	}
}

func TestInterpret_ConfidenceTierBoundaries(t *testing.T) {
	tests := []struct {
		p    float64
		tier domain.ConfidenceTier
	}{
		{0.90, domain.ConfidenceHigh},
		{0.9000001, domain.ConfidenceVeryHigh},
		{0.5, domain.ConfidenceLow},
		{0.50001, domain.ConfidenceMedium},
		{0.75, domain.ConfidenceMedium},
		{0.76, domain.ConfidenceHigh},
	}

	for _, tt := range tests {
		v, err := Interpret([]domain.ClassScore{score("neutral", tt.p)})
		require.NoError(t, err)
		assert.Equal(t, tt.tier, v.Tier, "p=%v", tt.p)
		assert.InDelta(t, tt.p*100, v.ConfidencePercent, 1e-9)
	}
}

func TestInterpret_UnrecognizedLabelFallsBackToPositive(t *testing.T) {
	v, err := Interpret([]domain.ClassScore{score("label_3", 0.8)})

	require.NoError(t, err)
	assert.Equal(t, domain.SentimentPositive, v.Sentiment)
	assert.Equal(t, 4, v.Stars)
	assert.Equal(t, domain.ConfidenceHigh, v.Tier)
	assert.Equal(t, "label_3", v.Label)
}

func TestInterpret_StrictRejectsUnrecognizedLabel(t *testing.T) {
	strict := New(WithStrict(true))
	require.True(t, strict.Strict())

	_, err := strict.Interpret([]domain.ClassScore{score("label_3", 0.8)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnrecognizedLabel)
	assert.Contains(t, err.Error(), "label_3")

	v, err := strict.Interpret([]domain.ClassScore{score("LABEL_2 (Positive)", 0.8)})
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentPositive, v.Sentiment)
}

func TestInterpret_FullVerdict(t *testing.T) {
	v, err := Interpret([]domain.ClassScore{
		score("negative", 0.02),
		score("neutral", 0.05),
		score("positive", 0.93),
	})

	require.NoError(t, err)
	assert.InDelta(t, 93.0, v.ConfidencePercent, 1e-9)
	assert.Equal(t, domain.Verdict{
		Label:             "positive",
		Sentiment:         domain.SentimentPositive,
		Icon:              "😊",
		Stars:             4,
		Probability:       0.93,
		ConfidencePercent: v.ConfidencePercent,
		Tier:              domain.ConfidenceVeryHigh,
	}, v)
	assert.Equal(t, "⭐⭐⭐⭐☆", v.StarDisplay())
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		label      string
		sentiment  domain.Sentiment
		recognized bool
	}{
		{"negative", domain.SentimentNegative, true},
		{"NEGATIVE", domain.SentimentNegative, true},
		{"very_negative", domain.SentimentNegative, true},
		{"Neutral", domain.SentimentNeutral, true},
		{"positive", domain.SentimentPositive, true},
		{"label_2", domain.SentimentPositive, false},
		{"", domain.SentimentPositive, false},
		// negative is checked first
		{"negative-or-neutral", domain.SentimentNegative, true},
		{"neutral/positive", domain.SentimentNeutral, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			s, ok := NormalizeLabel(tt.label)
			assert.Equal(t, tt.sentiment, s)
			assert.Equal(t, tt.recognized, ok)
		})
	}
}

func TestStarsFor_Clamped(t *testing.T) {
	assert.Equal(t, 5, StarsFor(domain.SentimentNegative, 7.0))
	assert.Equal(t, 1, StarsFor(domain.SentimentNegative, -3.0))
}

func TestDominant(t *testing.T) {
	top, err := Dominant([]domain.ClassScore{
		score("a", 0.1),
		score("b", 0.6),
		score("c", 0.6),
		score("d", 0.3),
	})

	require.NoError(t, err)
	assert.Equal(t, "b", top.Label)
}

// Random score sets always produce an in-range, deterministic verdict.
func TestInterpret_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	labels := []string{"negative", "neutral", "positive", "label_0", "LABEL_1", "Mixed"}

	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(5)
		scores := make([]domain.ClassScore, n)
		for j := range scores {
			scores[j] = score(labels[rng.Intn(len(labels))], rng.Float64())
		}

		first, err := Interpret(scores)
		require.NoError(t, err)
		second, err := Interpret(scores)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.GreaterOrEqual(t, first.Stars, domain.MinStars)
		assert.LessOrEqual(t, first.Stars, domain.MaxStars)
		assert.True(t, first.Tier.IsValid())
		assert.True(t, first.Sentiment.IsValid())
	}
}

func TestInterpret_ConcurrentUse(t *testing.T) {
	interp := New()
	in := []domain.ClassScore{score("negative", 0.8), score("positive", 0.2)}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := interp.Interpret(in)
			assert.NoError(t, err)
			assert.Equal(t, 2, v.Stars)
		}()
	}
	wg.Wait()
}
