// internal/platform/resilience/circuit_breaker.go
package resilience

import (
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"sentimeter/internal/platform/errors"
)

var (
	ErrCircuitOpen     = errors.Wrap(errors.ErrServiceUnavailable, "circuit breaker is open")
	ErrTooManyRequests = errors.Wrap(errors.ErrServiceUnavailable, "too many requests in half-open state")
)

// State representa el estado del circuit breaker.
type State = gobreaker.State

const (
	StateClosed   = gobreaker.StateClosed   // Normal operation
	StateHalfOpen = gobreaker.StateHalfOpen // Testing if service recovered
	StateOpen     = gobreaker.StateOpen     // Failing, rejecting requests
)

// Settings configura un CircuitBreaker.
type Settings struct {
	Name             string
	FailureThreshold int           // Fallos consecutivos para abrir
	Timeout          time.Duration // Tiempo abierto antes de half-open
	HalfOpenMax      int           // Requests permitidas en half-open

	// OnStateChange se invoca en cada transición (logs, métricas).
	OnStateChange func(name string, from, to State)
}

// CircuitBreaker implementa el patrón Circuit Breaker para dejar de llamar
// a un clasificador que está caído.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewCircuitBreaker crea un nuevo circuit breaker.
func NewCircuitBreaker(s Settings) *CircuitBreaker {
	if s.FailureThreshold <= 0 {
		s.FailureThreshold = 5
	}
	if s.Timeout <= 0 {
		s.Timeout = 60 * time.Second
	}
	if s.HalfOpenMax <= 0 {
		s.HalfOpenMax = 1
	}

	threshold := uint32(s.FailureThreshold)
	return &CircuitBreaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        s.Name,
			MaxRequests: uint32(s.HalfOpenMax),
			Timeout:     s.Timeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= threshold
			},
			OnStateChange: s.OnStateChange,
			IsSuccessful:  isSuccessful,
		}),
	}
}

// isSuccessful decide qué errores cuentan como fallo del servicio.
// Entrada inválida y cancelación del llamador no dicen nada de su salud.
func isSuccessful(err error) bool {
	return err == nil || errors.IsInvalidInput(err) || errors.IsCanceled(err)
}

// Execute ejecuta fn si el circuito lo permite.
func (c *CircuitBreaker) Execute(fn func() error) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		return fmt.Errorf("%s: %w", c.cb.Name(), ErrCircuitOpen)
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%s: %w", c.cb.Name(), ErrTooManyRequests)
	}
	return err
}

// Name retorna el nombre del circuit breaker.
func (c *CircuitBreaker) Name() string {
	return c.cb.Name()
}

// State retorna el estado actual.
func (c *CircuitBreaker) State() State {
	return c.cb.State()
}

// Stats retorna estadísticas del circuit breaker (útil para testing/monitoring).
func (c *CircuitBreaker) Stats() CircuitBreakerStats {
	counts := c.cb.Counts()
	return CircuitBreakerStats{
		State:                c.cb.State(),
		Requests:             counts.Requests,
		ConsecutiveFailures:  counts.ConsecutiveFailures,
		ConsecutiveSuccesses: counts.ConsecutiveSuccesses,
	}
}

// CircuitBreakerStats contiene estadísticas del circuit breaker.
type CircuitBreakerStats struct {
	State                State
	Requests             uint32
	ConsecutiveFailures  uint32
	ConsecutiveSuccesses uint32
}
