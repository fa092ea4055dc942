// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"sentimeter/internal/core/domain"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// field es un par clave/valor que conserva el orden en logfmt
type field struct {
	key   string
	value interface{}
}

// RawPresenter implementa el Presenter para pipes y scripts:
// una línea por evento, sin colores.
type RawPresenter struct {
	w      io.Writer
	format LogFormat
	mu     sync.Mutex
	clock  clockwork.Clock
}

// NewRawPresenter crea un nuevo RawPresenter
func NewRawPresenter(w io.Writer, format LogFormat) *RawPresenter {
	if w == nil {
		w = os.Stdout
	}
	return &RawPresenter{
		w:      w,
		format: format,
		clock:  clockwork.NewRealClock(),
	}
}

// log escribe una línea en el formato configurado
func (r *RawPresenter) log(level, message string, fields []field) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.clock.Now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields []field) {
	parts := make([]string, 0, len(fields)+3)
	parts = append(parts, timestamp)
	parts = append(parts, fmt.Sprintf("%-5s", level))
	parts = append(parts, message)

	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%s", f.key, r.formatValue(f.value)))
	}

	fmt.Fprintln(r.w, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields []field) {
	logEntry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}

	if len(fields) > 0 {
		data := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			data[f.key] = r.jsonValue(f.value)
		}
		logEntry["data"] = data
	}

	jsonBytes, err := json.Marshal(logEntry)
	if err != nil {
		jsonBytes, _ = json.Marshal(map[string]string{"level": "ERROR", "message": err.Error()})
	}
	fmt.Fprintln(r.w, string(jsonBytes))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " =\"\n\t") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return formatDuration(val)
	case float64:
		return fmt.Sprintf("%.2f", val)
	case domain.Scores:
		return r.formatValue(formatScores(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

// jsonValue adapta valores que no tienen una forma JSON útil
func (r *RawPresenter) jsonValue(v interface{}) interface{} {
	switch val := v.(type) {
	case time.Duration:
		return val.Milliseconds()
	default:
		return val
	}
}

// formatScores retorna "negative=1.23% neutral=6.46% positive=92.31%"
func formatScores(scores domain.Scores) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("%s=%.2f%%", s.Label, s.Percent())
	}
	return strings.Join(parts, " ")
}

// Start registra el inicio de la sesión. En modo single no escribe nada
// para que la salida sea exactamente una línea por análisis.
func (r *RawPresenter) Start(info SessionInfo) {
	if info.Mode == ModeSingle {
		return
	}
	r.log("INFO", "session_started", []field{
		{"mode", string(info.Mode)},
		{"classifier", info.Classifier},
		{"strict", info.Strict},
		{"version", info.Version},
	})
}

// StartAnalysis no escribe nada; el resultado sale en ShowAnalysis
func (r *RawPresenter) StartAnalysis(text string) {}

// ShowAnalysis escribe el análisis como una línea
func (r *RawPresenter) ShowAnalysis(analysis *domain.Analysis) {
	if analysis == nil {
		return
	}
	v := analysis.Verdict
	r.log("INFO", "analysis", []field{
		{"id", analysis.ID},
		{"sentiment", string(v.Sentiment)},
		{"label", v.Label},
		{"stars", v.Stars},
		{"confidence", v.ConfidencePercent},
		{"tier", string(v.Tier)},
		{"scores", analysis.Scores},
		{"classifier", analysis.Classifier},
		{"duration", analysis.Duration},
		{"text", analysis.Text},
	})
}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg, nil)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg, nil)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg, nil)
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}
