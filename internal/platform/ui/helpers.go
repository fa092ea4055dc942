// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// TitleLabel capitaliza una etiqueta de clase para mostrarla ("negative" -> "Negative").
// cases.Caser guarda estado, por eso se crea uno por llamada.
func TitleLabel(label string) string {
	return cases.Title(language.Und).String(label)
}

// truncateText acorta el texto mostrado en el spinner
func truncateText(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
