// internal/platform/ui/colors.go
package ui

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"sentimeter/internal/core/domain"
)

// Paleta "Sakura" para los elementos propios de la aplicación
var (
	// BlossomPink - acentos principales
	BlossomPink = pterm.NewRGB(255, 183, 197)

	// BarkGray - texto secundario
	BarkGray = pterm.NewRGB(110, 110, 110)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = BlossomPink.ToRGBStyle()
	StyleSecondary = BarkGray.ToRGBStyle()
)

// Palette agrupa los colores con los que se muestra un sentimiento.
// Los valores hex los comparten la terminal y la página web.
type Palette struct {
	// Background fondo de la caja de resultado
	Background string

	// Foreground texto de la caja de resultado
	Foreground string

	// Bar color de la barra en el gráfico de distribución
	Bar string

	// Border color ANSI del borde en la terminal
	Border pterm.Color
}

var sentimentPalettes = map[domain.Sentiment]Palette{
	domain.SentimentNegative: {Background: "#fdecea", Foreground: "#611a15", Bar: "#dc3545", Border: pterm.FgRed},
	domain.SentimentNeutral:  {Background: "#fff8e1", Foreground: "#856404", Bar: "#ffc107", Border: pterm.FgYellow},
	domain.SentimentPositive: {Background: "#e6f4ea", Foreground: "#0f5132", Bar: "#28a745", Border: pterm.FgGreen},
}

// PaletteFor retorna la paleta de un sentimiento.
// Un valor desconocido usa la de positive, igual que la normalización de etiquetas.
func PaletteFor(s domain.Sentiment) Palette {
	if p, ok := sentimentPalettes[s]; ok {
		return p
	}
	return sentimentPalettes[domain.SentimentPositive]
}

// BackgroundRGB retorna el fondo como color pterm
func (p Palette) BackgroundRGB() pterm.RGB { return hexRGB(p.Background) }

// ForegroundRGB retorna el texto como color pterm
func (p Palette) ForegroundRGB() pterm.RGB { return hexRGB(p.Foreground) }

// hexRGB convierte "#rrggbb" a pterm.RGB; cualquier otra cosa da negro.
func hexRGB(hex string) pterm.RGB {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return pterm.NewRGB(0, 0, 0)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return pterm.NewRGB(0, 0, 0)
	}
	return pterm.NewRGB(uint8(v>>16), uint8(v>>8), uint8(v))
}
