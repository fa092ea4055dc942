// internal/platform/ui/noop_presenter.go
package ui

import "sentimeter/internal/core/domain"

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para modo quiet.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

// Start no hace nada
func (n *NoopPresenter) Start(info SessionInfo) {}

// StartAnalysis no hace nada
func (n *NoopPresenter) StartAnalysis(text string) {}

// ShowAnalysis no hace nada
func (n *NoopPresenter) ShowAnalysis(analysis *domain.Analysis) {}

// Info no hace nada
func (n *NoopPresenter) Info(msg string) {}

// Warning no hace nada
func (n *NoopPresenter) Warning(msg string) {}

// Error no hace nada
func (n *NoopPresenter) Error(msg string) {}

// Close no hace nada
func (n *NoopPresenter) Close() error {
	return nil
}
