// internal/adapters/web/views.go
package web

import (
	"fmt"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/core/interpreter"
	"sentimeter/internal/platform/ui"
)

// pageView alimenta templates/index.html
type pageView struct {
	Title      string
	Subtitle   string
	InputLabel string
	Button     string
	MaxRunes   int

	Text    string
	Warning string
	Error   string
	Result  *resultView

	Classifier string
	RequestID  string
}

// resultView es la caja de resultado más el gráfico de barras
type resultView struct {
	Title       string
	Sentiment   string
	Confidence  string
	StarDisplay string
	Stars       int
	MaxStars    int
	Background  string
	Foreground  string

	ChartTitle string
	AxisTitle  string
	Bars       []barView
}

// barView es una barra del gráfico; Width es relativo al eje fijo [0,1]
type barView struct {
	Label   string
	Percent string
	Width   string
	Color   string
}

// scoreResponse es un score por clase en la API JSON
type scoreResponse struct {
	Label       string  `json:"label"`
	Display     string  `json:"display"`
	Probability float64 `json:"probability"`
	Percent     float64 `json:"percent"`
	Color       string  `json:"color"`
}

// analyzeResponse es el cuerpo de POST /api/v1/analyze
type analyzeResponse struct {
	ID                string          `json:"id"`
	RequestID         string          `json:"request_id"`
	Text              string          `json:"text"`
	Classifier        string          `json:"classifier"`
	Sentiment         string          `json:"sentiment"`
	Label             string          `json:"label"`
	Icon              string          `json:"icon"`
	Stars             int             `json:"stars"`
	StarDisplay       string          `json:"star_display"`
	Probability       float64         `json:"probability"`
	ConfidencePercent float64         `json:"confidence_percent"`
	ConfidenceTier    string          `json:"confidence_tier"`
	ConfidenceLabel   string          `json:"confidence_label"`
	Scores            []scoreResponse `json:"scores"`
	DurationMS        int64           `json:"duration_ms"`
}

// errorResponse es el cuerpo de error de la API JSON
type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func newPageView(classifier string, maxRunes int, requestID string) pageView {
	return pageView{
		Title:      ui.AppTitle,
		Subtitle:   ui.AppSubtitle,
		InputLabel: ui.InputLabel,
		Button:     ui.AnalyzeButton,
		MaxRunes:   maxRunes,
		Classifier: classifier,
		RequestID:  requestID,
	}
}

func newResultView(a *domain.Analysis) *resultView {
	v := a.Verdict
	palette := ui.PaletteFor(v.Sentiment)

	bars := make([]barView, 0, len(a.Scores))
	for _, s := range a.Scores {
		bars = append(bars, barView{
			Label:   ui.TitleLabel(s.Label),
			Percent: fmt.Sprintf("%.2f%%", s.Percent()),
			Width:   fmt.Sprintf("%.2f%%", clampUnit(s.Probability)*100),
			Color:   barColor(s.Label),
		})
	}

	return &resultView{
		Title:       ui.ResultTitle,
		Sentiment:   v.DisplaySentiment(),
		Confidence:  v.DisplayConfidence(),
		StarDisplay: v.StarDisplay(),
		Stars:       v.Stars,
		MaxStars:    domain.MaxStars,
		Background:  palette.Background,
		Foreground:  palette.Foreground,
		ChartTitle:  ui.ChartTitle,
		AxisTitle:   ui.ChartAxis,
		Bars:        bars,
	}
}

func newAnalyzeResponse(a *domain.Analysis, requestID string) analyzeResponse {
	v := a.Verdict

	scores := make([]scoreResponse, 0, len(a.Scores))
	for _, s := range a.Scores {
		scores = append(scores, scoreResponse{
			Label:       s.Label,
			Display:     ui.TitleLabel(s.Label),
			Probability: s.Probability,
			Percent:     s.Percent(),
			Color:       barColor(s.Label),
		})
	}

	return analyzeResponse{
		ID:                a.ID,
		RequestID:         requestID,
		Text:              a.Text,
		Classifier:        a.Classifier,
		Sentiment:         v.Sentiment.String(),
		Label:             v.Label,
		Icon:              v.Icon,
		Stars:             v.Stars,
		StarDisplay:       v.StarDisplay(),
		Probability:       v.Probability,
		ConfidencePercent: v.ConfidencePercent,
		ConfidenceTier:    v.Tier.String(),
		ConfidenceLabel:   v.Tier.Label(),
		Scores:            scores,
		DurationMS:        a.Duration.Milliseconds(),
	}
}

// barColor colorea por clase, no por posición
func barColor(label string) string {
	sentiment, _ := interpreter.NormalizeLabel(label)
	return ui.PaletteFor(sentiment).Bar
}

// clampUnit acota al eje [0,1] del gráfico
func clampUnit(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
