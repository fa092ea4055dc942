// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
sentimeter - Sentiment analysis for free text

USAGE:
  sentimeter [options] [text...]
  echo "text" | sentimeter [options]
  sentimeter --serve [options]

  With no text and an interactive terminal, sentimeter starts a prompt loop.

IMPORTANT:
  Use double dash (--) for long flag names: --text, --format, --serve
  Use single dash (-) for short flags: -x, -f, -s

  ❌ WRONG:  sentimeter -text "great movie"
  ✓  RIGHT:  sentimeter --text "great movie"
  ✓  RIGHT:  sentimeter -x "great movie"

CORE OPTIONS:
  -x, --text string        Text to analyze (single shot)
  -f, --format string      Output format: pretty, json, text (default: "pretty")
  -q, --quiet              Print nothing, only the exit code (default: false)
      --strict             Fail on labels other than negative/neutral/positive (default: false)
      --max-chars int      Maximum text length in characters (default: 2000)
  -T, --timeout int        Global timeout in seconds for single shot, 0=no timeout (default: 60)
  -c, --config string      YAML configuration file

CLASSIFIER OPTIONS:
  -m, --model string            Hugging Face model id
                                (default: "cardiffnlp/twitter-roberta-base-sentiment-latest")
      --endpoint string         Inference endpoint URL, overrides the URL derived from --model
      --wait-for-model          Ask the API to wait while the model loads (default: true)
      --label-map k=v,...       Rename raw labels, e.g. LABEL_0=negative,LABEL_2=positive
      --request-timeout dur     Timeout per classifier request (default: 30s)
      --rate float              Classifier requests per second, 0=unlimited (default: 2)
      --burst int               Classifier request burst (default: 2)

RESILIENCE OPTIONS:
  -r, --retries int        Max retries per classifier request (default: 3)
      --backoff dur        Base retry backoff (default: 500ms)
      --circuit-breaker    Enable the classifier circuit breaker (default: true)

WEB OPTIONS:
  -s, --serve              Run the web front end
  -a, --addr string        Listen address (default: "127.0.0.1:8501")
      --metrics            Expose /metrics (default: true)
      --client-rate float  Analyses per second per client IP, 0=unlimited (default: 1)
      --client-burst int   Analysis burst per client IP (default: 5)

NETWORK OPTIONS:
  -p, --proxy string       HTTP(S) proxy URL for classifier requests (optional)
      --no-proxy string    Comma-separated hosts that bypass the proxy

LOGGING OPTIONS:
      --log-level string   debug, info, warn, error (default: warn when interactive, info otherwise)
      --log-json           Write logs as JSON to stderr

INFO:
  -v, --version            Print version information and exit
  -h, --help               Show this help message

EXAMPLES:
  Single shot:
    sentimeter -x "I love this product"

  From a pipe, one JSON line out:
    echo "The service was slow" | sentimeter -f json

  Interactive prompt:
    sentimeter

  Web front end with metrics:
    sentimeter --serve -a :8501

  A model with generic labels:
    sentimeter -m some/model --label-map LABEL_0=negative,LABEL_1=neutral,LABEL_2=positive

ENVIRONMENT VARIABLES:
  Most options can be set via environment variables with SENTIMETER_ prefix:

  SENTIMETER_CONFIG=/path.yaml             Configuration file
  SENTIMETER_FORMAT=json                   Output format
  SENTIMETER_STRICT=true                   Strict label handling
  SENTIMETER_LOG_LEVEL=debug               Log level
  SENTIMETER_CLASSIFIER_MODEL=owner/name   Model id
  SENTIMETER_CLASSIFIER_TOKEN=hf_...       API token (HF_TOKEN is also read)
  SENTIMETER_CLASSIFIER_LABEL_MAP=k=v,...  Label map
  SENTIMETER_RESILIENCE_MAX_RETRIES=5      Max retries
  SENTIMETER_SERVER_ADDR=:8080             Web listen address
  SENTIMETER_PROXY_URL=http://...          Proxy URL

  Note: CLI flags override environment variables, which override the config file.

EXIT CODES:
  0  analysis printed
  1  the classifier failed (network, API error, unusable response)
  2  invalid input or configuration
`

// PrintHelp writes the custom help message.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "sentimeter %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
