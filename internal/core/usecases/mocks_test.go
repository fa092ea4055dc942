// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"io"
	"sync"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/core/ports"
	"sentimeter/internal/platform/logx"
	"sentimeter/internal/platform/ui"
)

// mockClassifier es un mock de ports.Classifier
type mockClassifier struct {
	mu           sync.Mutex
	name         string
	classifyFunc func(ctx context.Context, text string) ([]domain.ClassScore, error)
	texts        []string
}

func newMockClassifier(scores ...domain.ClassScore) *mockClassifier {
	return &mockClassifier{
		name: "mock",
		classifyFunc: func(ctx context.Context, text string) ([]domain.ClassScore, error) {
			return scores, nil
		},
	}
}

// mockClassifierWithError creates a mock that always fails
func mockClassifierWithError(err error) *mockClassifier {
	return &mockClassifier{
		name: "mock",
		classifyFunc: func(ctx context.Context, text string) ([]domain.ClassScore, error) {
			return nil, err
		},
	}
}

func (m *mockClassifier) Name() string {
	return m.name
}

func (m *mockClassifier) Classify(ctx context.Context, text string) ([]domain.ClassScore, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	return m.classifyFunc(ctx, text)
}

func (m *mockClassifier) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.texts)
}

// mockObserver es un mock de ports.AnalysisObserver
type mockObserver struct {
	mu       sync.Mutex
	analyses []*domain.Analysis
	failures []ports.Stage
	errs     []error
}

func (m *mockObserver) OnAnalysis(a *domain.Analysis) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses = append(m.analyses, a)
}

func (m *mockObserver) OnFailure(stage ports.Stage, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, stage)
	m.errs = append(m.errs, err)
}

// promptStep es una respuesta guionizada del prompter
type promptStep struct {
	text    string
	confirm bool
	err     error
}

// mockPrompter responde ReadText y Confirm en orden desde un guion
type mockPrompter struct {
	texts    []promptStep
	confirms []promptStep
	asked    []string
}

func (m *mockPrompter) ReadText(ctx context.Context) (string, error) {
	if len(m.texts) == 0 {
		return "", ui.ErrInterrupted
	}
	step := m.texts[0]
	m.texts = m.texts[1:]
	return step.text, step.err
}

func (m *mockPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	m.asked = append(m.asked, question)
	if len(m.confirms) == 0 {
		return false, nil
	}
	step := m.confirms[0]
	m.confirms = m.confirms[1:]
	return step.confirm, step.err
}

// mockPresenter registra lo que se le pide mostrar
type mockPresenter struct {
	ui.NoopPresenter
	started  []string
	shown    []*domain.Analysis
	warnings []string
	errors   []string
}

func (m *mockPresenter) StartAnalysis(text string) { m.started = append(m.started, text) }
func (m *mockPresenter) ShowAnalysis(a *domain.Analysis) { m.shown = append(m.shown, a) }
func (m *mockPresenter) Warning(msg string) { m.warnings = append(m.warnings, msg) }
func (m *mockPresenter) Error(msg string) { m.errors = append(m.errors, msg) }

func quietLogger() logx.Logger {
	return logx.NewWithOptions(logx.Options{Writer: io.Discard, Level: logx.LevelError})
}

func threeClass(neg, neu, pos float64) []domain.ClassScore {
	return []domain.ClassScore{
		domain.NewClassScore("negative", neg),
		domain.NewClassScore("neutral", neu),
		domain.NewClassScore("positive", pos),
	}
}
