// internal/platform/ui/symbols.go
package ui

// Iconos usados por los presenters
const (
	IconBlossom    = "🌸"
	IconClassifier = "🤖"
	IconTime       = "⏱"
	IconText       = "📝"
	IconChart      = "📊"
)

// SeparatorLight separa el header de los resultados
const SeparatorLight = "────────────────────────────────────────────────────────"

// Textos fijos de la aplicación
const (
	AppTitle      = IconBlossom + " Sentiment Analysis Application"
	AppSubtitle   = "Enter a movie review, product feedback, or comment for the system to analyze. 🎬"
	InputLabel    = "✍️ Type a sentence or paragraph:"
	ChartTitle    = "Sentiment Confidence Distribution"
	ChartAxis     = "Confidence Level"
	ResultTitle   = IconChart + " Analysis Result"
	AnalyzeButton = "🔍 Analyze Sentiment"
	EmptyTextHint = "Please enter some text to analyze."
)
