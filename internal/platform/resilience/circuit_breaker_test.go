// internal/platform/resilience/circuit_breaker_test.go
package resilience

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/core/ports"
	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/logx"
)

var errBackend = errors.Wrap(errors.ErrServiceUnavailable, "backend down")

type transition struct {
	from, to State
}

func newBreaker(t *testing.T, threshold int, timeout time.Duration) (*CircuitBreaker, func() []transition) {
	t.Helper()
	var (
		mu    sync.Mutex
		trans []transition
	)
	cb := NewCircuitBreaker(Settings{
		Name:             "test",
		FailureThreshold: threshold,
		Timeout:          timeout,
		HalfOpenMax:      1,
		OnStateChange: func(_ string, from, to State) {
			mu.Lock()
			defer mu.Unlock()
			trans = append(trans, transition{from, to})
		},
	})
	return cb, func() []transition {
		mu.Lock()
		defer mu.Unlock()
		return append([]transition(nil), trans...)
	}
}

func fail() error    { return errBackend }
func succeed() error { return nil }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, transitions := newBreaker(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errBackend)
	}
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, []transition{{StateClosed, StateOpen}}, transitions())

	calls := 0
	err := cb.Execute(func() error { calls++; return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.True(t, errors.IsServiceUnavailable(err))
	assert.Equal(t, 0, calls, "open circuit must not call through")
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newBreaker(t, 3, time.Minute)

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	require.NoError(t, cb.Execute(succeed))
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Stats().ConsecutiveFailures)
}

func TestCircuitBreaker_IgnoresCallerErrors(t *testing.T) {
	cb, _ := newBreaker(t, 1, time.Minute)

	invalid := errors.Wrap(errors.ErrInvalidInput, "blank")
	assert.ErrorIs(t, cb.Execute(func() error { return invalid }), invalid)
	assert.ErrorIs(t, cb.Execute(func() error { return context.Canceled }), context.Canceled)

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb, transitions := newBreaker(t, 1, 20*time.Millisecond)

	_ = cb.Execute(fail)
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []transition{
		{StateClosed, StateOpen},
		{StateOpen, StateHalfOpen},
		{StateHalfOpen, StateClosed},
	}, transitions())
}

func TestCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker(Settings{Name: "defaults"})

	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	assert.Equal(t, StateClosed, cb.State(), "default threshold is 5")
	_ = cb.Execute(fail)
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, "defaults", cb.Name())
}

func TestGuardedClassifier(t *testing.T) {
	logger := logx.NewSilent()
	scores := []domain.ClassScore{domain.NewClassScore("positive", 0.9)}

	t.Run("passes results through", func(t *testing.T) {
		inner := ports.ClassifierFunc(func(ctx context.Context, text string) ([]domain.ClassScore, error) {
			return scores, nil
		})
		cb, _ := newBreaker(t, 2, time.Minute)
		g := NewGuardedClassifier(inner, cb, logger)

		got, err := g.Classify(context.Background(), "great")
		require.NoError(t, err)
		assert.Equal(t, scores, got)
		assert.Equal(t, "func", g.Name())
		assert.Same(t, cb, g.CircuitBreaker())
	})

	t.Run("stops calling a failing classifier", func(t *testing.T) {
		calls := 0
		inner := ports.ClassifierFunc(func(ctx context.Context, text string) ([]domain.ClassScore, error) {
			calls++
			return nil, errBackend
		})
		cb, _ := newBreaker(t, 2, time.Minute)
		g := NewGuardedClassifier(inner, cb, logger)

		for i := 0; i < 5; i++ {
			_, err := g.Classify(context.Background(), "text")
			assert.True(t, errors.IsServiceUnavailable(err))
		}
		assert.Equal(t, 2, calls)
	})

	t.Run("nil breaker calls through", func(t *testing.T) {
		calls := 0
		inner := ports.ClassifierFunc(func(ctx context.Context, text string) ([]domain.ClassScore, error) {
			calls++
			return nil, errBackend
		})
		g := NewGuardedClassifier(inner, nil, logger)

		for i := 0; i < 3; i++ {
			_, err := g.Classify(context.Background(), "text")
			assert.ErrorIs(t, err, errBackend)
		}
		assert.Equal(t, 3, calls)
	})
}
