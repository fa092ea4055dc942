// Package interpreter maps a classifier's per-class probabilities to a Verdict:
// the dominant class, a display sentiment, a 1-5 star rating and a confidence tier.
//
// Everything here is pure and deterministic. An Interpreter carries only its
// options, so one value can be shared by any number of goroutines.
package interpreter

import (
	"math"
	"strings"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/platform/errors"
)

// FiveStarThreshold is the dominant probability at which a positive verdict gets five stars.
const FiveStarThreshold = 0.95

// NeutralStars is the fixed rating for neutral verdicts.
const NeutralStars = 3

// Interpreter converts score sets into verdicts.
type Interpreter struct {
	strict bool
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStrict makes Interpret fail with domain.ErrUnrecognizedLabel when the
// dominant label contains none of "negative", "neutral" or "positive",
// instead of falling back to positive.
func WithStrict(strict bool) Option {
	return func(i *Interpreter) {
		i.strict = strict
	}
}

// New creates an Interpreter. The zero-option Interpreter is lenient.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Strict reports whether unrecognized labels are rejected.
func (i *Interpreter) Strict() bool {
	return i.strict
}

// Interpret derives a Verdict from scores. It fails only on an empty score
// set (wrapping errors.ErrInvalidInput) or, in strict mode, on an
// unrecognized dominant label.
func (i *Interpreter) Interpret(scores []domain.ClassScore) (domain.Verdict, error) {
	top, err := Dominant(scores)
	if err != nil {
		return domain.Verdict{}, err
	}

	sentiment, recognized := NormalizeLabel(top.Label)
	if !recognized && i.strict {
		return domain.Verdict{}, errors.Wrapf(domain.ErrUnrecognizedLabel, "label %q", top.Label)
	}

	return domain.Verdict{
		Label:             top.Label,
		Sentiment:         sentiment,
		Icon:              sentiment.Icon(),
		Stars:             StarsFor(sentiment, top.Probability),
		Probability:       top.Probability,
		ConfidencePercent: top.Probability * 100,
		Tier:              domain.TierFor(top.Probability),
	}, nil
}

// Interpret is a convenience for New().Interpret(scores).
func Interpret(scores []domain.ClassScore) (domain.Verdict, error) {
	return New().Interpret(scores)
}

// Dominant returns the score with the highest probability. When several share
// the maximum, the first one in iteration order wins.
func Dominant(scores []domain.ClassScore) (domain.ClassScore, error) {
	if len(scores) == 0 {
		return domain.ClassScore{}, domain.ErrEmptyScores
	}

	top := scores[0]
	for _, s := range scores[1:] {
		if s.Probability > top.Probability {
			top = s
		}
	}
	return top, nil
}

// NormalizeLabel maps a free-form classifier label to a Sentiment using
// case-insensitive substring matching, checked in the order negative,
// neutral, positive. Anything else falls back to SentimentPositive with
// recognized=false. The fallback is kept on purpose: callers that want
// unknown labels rejected use WithStrict.
func NormalizeLabel(label string) (sentiment domain.Sentiment, recognized bool) {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "negative"):
		return domain.SentimentNegative, true
	case strings.Contains(l, "neutral"):
		return domain.SentimentNeutral, true
	case strings.Contains(l, "positive"):
		return domain.SentimentPositive, true
	default:
		return domain.SentimentPositive, false
	}
}

// StarsFor returns the star rating for a sentiment and its dominant probability.
//
//	negative: 1 + floor(p*2)   (1 to 3 stars; p=1.0 gives 3)
//	neutral:  3
//	positive: 4 below FiveStarThreshold, 5 at or above it
//
// The result is clamped to [1,5] so out-of-range probabilities from a
// misbehaving classifier cannot produce an impossible rating.
func StarsFor(sentiment domain.Sentiment, probability float64) int {
	var stars int
	switch sentiment {
	case domain.SentimentNegative:
		stars = 1 + int(math.Floor(probability*2))
	case domain.SentimentNeutral:
		stars = NeutralStars
	default:
		if probability < FiveStarThreshold {
			stars = 4
		} else {
			stars = 5
		}
	}
	return clampStars(stars)
}

func clampStars(n int) int {
	if n < domain.MinStars {
		return domain.MinStars
	}
	if n > domain.MaxStars {
		return domain.MaxStars
	}
	return n
}
