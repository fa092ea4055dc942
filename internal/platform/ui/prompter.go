// internal/platform/ui/prompter.go
package ui

import (
	"context"

	"github.com/pterm/pterm"

	"sentimeter/internal/platform/errors"
)

// ErrInterrupted indica que el usuario canceló el prompt (Ctrl+C)
var ErrInterrupted = errors.New("input interrupted")

// PTermPrompter lee texto y confirmaciones de la terminal con los
// printers interactivos de pterm.
type PTermPrompter struct {
	prompt string
}

// NewPTermPrompter crea un prompter con el texto de entrada por defecto
func NewPTermPrompter() *PTermPrompter {
	return &PTermPrompter{prompt: IconText + " Text to analyze"}
}

// ReadText muestra el prompt de una línea y retorna lo escrito.
// Ctrl+C retorna ErrInterrupted en vez de terminar el proceso.
func (p *PTermPrompter) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	interrupted := false
	text, err := pterm.DefaultInteractiveTextInput.
		WithMultiLine(false).
		WithOnInterruptFunc(func() { interrupted = true }).
		Show(p.prompt)
	if interrupted {
		return "", ErrInterrupted
	}
	if err != nil {
		return "", errors.Wrap(err, "read text")
	}
	return text, nil
}

// Confirm pregunta sí/no; el valor por defecto es sí.
func (p *PTermPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	interrupted := false
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(true).
		WithOnInterruptFunc(func() { interrupted = true }).
		Show(question)
	if interrupted {
		return false, ErrInterrupted
	}
	if err != nil {
		return false, errors.Wrap(err, "confirm")
	}
	return ok, nil
}
