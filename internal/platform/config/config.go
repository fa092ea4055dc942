// internal/platform/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/validator"
)

const (
	// DefaultModel es el modelo de sentimiento usado cuando no se configura otro.
	DefaultModel = "cardiffnlp/twitter-roberta-base-sentiment-latest"

	// DefaultEndpointBase es la raíz del Inference API; el modelo se añade al final.
	DefaultEndpointBase = "https://router.huggingface.co/hf-inference/models/"

	FormatPretty = "pretty"
	FormatJSON   = "json"
	FormatText   = "text"
)

// ErrHelp se devuelve cuando se pidió -h/--help; el llamador imprime la ayuda.
var ErrHelp = pflag.ErrHelp

type Config struct {
	// App
	Text         string `yaml:"-" json:"-"`
	Format       string `yaml:"format" json:"format"` // pretty | json | text
	Quiet        bool   `yaml:"quiet" json:"quiet"`
	Strict       bool   `yaml:"strict" json:"strict"`
	MaxTextRunes int    `yaml:"max_text_runes" json:"max_text_runes"`
	TimeoutS     int    `yaml:"timeout" json:"timeout"` // segundos (0 = sin timeout)
	ConfigPath   string `yaml:"-" json:"config_path,omitempty"`
	PrintVersion bool   `yaml:"-" json:"-"`

	Log        Log        `yaml:"log" json:"log"`
	Classifier Classifier `yaml:"classifier" json:"classifier"`
	Resilience Resilience `yaml:"resilience" json:"resilience"`
	Server     Server     `yaml:"server" json:"server"`

	// Proxy
	ProxyURL string `yaml:"proxy_url" json:"proxy_url,omitempty"`
	NoProxy  string `yaml:"no_proxy" json:"no_proxy,omitempty"`
}

type Log struct {
	Level string `yaml:"level" json:"level"` // vacío = según el modo
	JSON  bool   `yaml:"json" json:"json"`
}

type Classifier struct {
	Model        string            `yaml:"model" json:"model"`
	Endpoint     string            `yaml:"endpoint" json:"endpoint,omitempty"` // vacío = DefaultEndpointBase + Model
	Token        string            `yaml:"token" json:"token,omitempty"`
	WaitForModel bool              `yaml:"wait_for_model" json:"wait_for_model"`
	LabelMap     map[string]string `yaml:"label_map" json:"label_map,omitempty"`
	Timeout      time.Duration     `yaml:"timeout" json:"timeout"`
	RateLimit    float64           `yaml:"rate_limit" json:"rate_limit"` // peticiones/segundo (0 = sin límite)
	RateBurst    int               `yaml:"rate_burst" json:"rate_burst"`
}

type Resilience struct {
	// Retry configuration
	MaxRetries  int           `yaml:"max_retries" json:"max_retries"`
	BackoffBase time.Duration `yaml:"backoff_base" json:"backoff_base"`
	MaxBackoff  time.Duration `yaml:"max_backoff" json:"max_backoff"`

	// Circuit Breaker configuration
	CircuitBreakerEnabled     bool          `yaml:"circuit_breaker" json:"circuit_breaker"`
	CircuitBreakerThreshold   int           `yaml:"circuit_breaker_threshold" json:"circuit_breaker_threshold"` // fallos consecutivos antes de abrir
	CircuitBreakerTimeout     time.Duration `yaml:"circuit_breaker_timeout" json:"circuit_breaker_timeout"`     // tiempo abierto
	CircuitBreakerHalfOpenMax int           `yaml:"circuit_breaker_half_open_max" json:"circuit_breaker_half_open_max"`
}

type Server struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Addr      string  `yaml:"addr" json:"addr"`
	Metrics   bool    `yaml:"metrics" json:"metrics"`
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"` // análisis/segundo por cliente (0 = sin límite)
	RateBurst int     `yaml:"rate_burst" json:"rate_burst"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Format:       FormatPretty,
		MaxTextRunes: 2000,
		TimeoutS:     60,

		Classifier: Classifier{
			Model:        DefaultModel,
			WaitForModel: true,
			Timeout:      30 * time.Second,
			RateLimit:    2,
			RateBurst:    2,
		},

		Resilience: Resilience{
			MaxRetries:                3,
			BackoffBase:               500 * time.Millisecond,
			MaxBackoff:                8 * time.Second,
			CircuitBreakerEnabled:     true,
			CircuitBreakerThreshold:   5,
			CircuitBreakerTimeout:     30 * time.Second,
			CircuitBreakerHalfOpenMax: 1,
		},

		Server: Server{
			Addr:      "127.0.0.1:8501",
			Metrics:   true,
			RateLimit: 1,
			RateBurst: 5,
		},
	}
}

// Load inicializa la configuración en orden de prioridad creciente:
// defaults -> archivo YAML -> ENV -> FLAGS. Los argumentos posicionales
// forman el texto a analizar.
func Load(args []string) (Config, error) {
	// Primera pasada: solo para descubrir --config y detectar errores de flags.
	var scratch Config
	pre := newFlagSet(&scratch)
	if err := pre.Parse(args); err != nil {
		return Config{}, err
	}
	if wantsHelp(pre) {
		return Config{}, ErrHelp
	}

	cfg := DefaultConfig()

	cfg.ConfigPath = getenv("SENTIMETER_CONFIG", "")
	if scratch.ConfigPath != "" {
		cfg.ConfigPath = scratch.ConfigPath
	}
	if cfg.ConfigPath != "" {
		if err := loadFromFile(cfg.ConfigPath, &cfg); err != nil {
			return Config{}, err
		}
	}

	// Cargar desde ENV
	if err := loadFromEnv(&cfg); err != nil {
		return Config{}, err
	}

	// Parsear flags (overrides ENV)
	fs := newFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if rest := strings.TrimSpace(strings.Join(fs.Args(), " ")); rest != "" {
		if fs.Changed("text") {
			return Config{}, errors.Wrap(errors.ErrInvalidInput, "text given both with --text and as arguments")
		}
		cfg.Text = rest
	}

	// Normalizar
	normalize(&cfg)

	return cfg, nil
}

// loadFromFile superpone un archivo YAML sobre la configuración actual.
// Las claves desconocidas son un error.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &ValidationError{Problems: []string{fmt.Sprintf("parse %s: %v", path, err)}}
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) error {
	var problems []string
	dur := func(key string, dst *time.Duration) {
		if v := getenv(key, ""); v != "" {
			d, err := parseDuration(v)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: %v", key, err))
				return
			}
			*dst = d
		}
	}

	if v := getenv("SENTIMETER_FORMAT", ""); v != "" {
		cfg.Format = v
	}
	if v := getenv("SENTIMETER_QUIET", ""); v != "" {
		cfg.Quiet = parseBool(v)
	}
	if v := getenv("SENTIMETER_STRICT", ""); v != "" {
		cfg.Strict = parseBool(v)
	}
	if v := getenv("SENTIMETER_MAX_TEXT_RUNES", ""); v != "" {
		cfg.MaxTextRunes = parseInt(v, cfg.MaxTextRunes)
	}
	if v := getenv("SENTIMETER_TIMEOUT", ""); v != "" {
		cfg.TimeoutS = parseInt(v, cfg.TimeoutS)
	}

	// Log
	if v := getenv("SENTIMETER_LOG_LEVEL", ""); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv("SENTIMETER_LOG_JSON", ""); v != "" {
		cfg.Log.JSON = parseBool(v)
	}

	// Classifier
	if v := getenv("SENTIMETER_CLASSIFIER_MODEL", ""); v != "" {
		cfg.Classifier.Model = v
	}
	if v := getenv("SENTIMETER_CLASSIFIER_ENDPOINT", ""); v != "" {
		cfg.Classifier.Endpoint = v
	}
	// HF_TOKEN es la variable estándar del ecosistema; la propia tiene prioridad.
	if v := getenv("HF_TOKEN", ""); v != "" {
		cfg.Classifier.Token = v
	}
	if v := getenv("SENTIMETER_CLASSIFIER_TOKEN", ""); v != "" {
		cfg.Classifier.Token = v
	}
	if v := getenv("SENTIMETER_CLASSIFIER_WAIT_FOR_MODEL", ""); v != "" {
		cfg.Classifier.WaitForModel = parseBool(v)
	}
	if v := getenv("SENTIMETER_CLASSIFIER_LABEL_MAP", ""); v != "" {
		m, err := parseLabelMap(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("SENTIMETER_CLASSIFIER_LABEL_MAP: %v", err))
		} else {
			cfg.Classifier.LabelMap = m
		}
	}
	dur("SENTIMETER_CLASSIFIER_TIMEOUT", &cfg.Classifier.Timeout)
	if v := getenv("SENTIMETER_CLASSIFIER_RATE_LIMIT", ""); v != "" {
		cfg.Classifier.RateLimit = parseFloat(v, cfg.Classifier.RateLimit)
	}
	if v := getenv("SENTIMETER_CLASSIFIER_RATE_BURST", ""); v != "" {
		cfg.Classifier.RateBurst = parseInt(v, cfg.Classifier.RateBurst)
	}

	// Resilience
	if v := getenv("SENTIMETER_RESILIENCE_MAX_RETRIES", ""); v != "" {
		cfg.Resilience.MaxRetries = parseInt(v, cfg.Resilience.MaxRetries)
	}
	dur("SENTIMETER_RESILIENCE_BACKOFF_BASE", &cfg.Resilience.BackoffBase)
	dur("SENTIMETER_RESILIENCE_MAX_BACKOFF", &cfg.Resilience.MaxBackoff)
	if v := getenv("SENTIMETER_RESILIENCE_CB_ENABLED", ""); v != "" {
		cfg.Resilience.CircuitBreakerEnabled = parseBool(v)
	}
	if v := getenv("SENTIMETER_RESILIENCE_CB_THRESHOLD", ""); v != "" {
		cfg.Resilience.CircuitBreakerThreshold = parseInt(v, cfg.Resilience.CircuitBreakerThreshold)
	}
	dur("SENTIMETER_RESILIENCE_CB_TIMEOUT", &cfg.Resilience.CircuitBreakerTimeout)

	// Server
	if v := getenv("SENTIMETER_SERVER_ENABLED", ""); v != "" {
		cfg.Server.Enabled = parseBool(v)
	}
	if v := getenv("SENTIMETER_SERVER_ADDR", ""); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv("SENTIMETER_SERVER_METRICS", ""); v != "" {
		cfg.Server.Metrics = parseBool(v)
	}
	if v := getenv("SENTIMETER_SERVER_RATE_LIMIT", ""); v != "" {
		cfg.Server.RateLimit = parseFloat(v, cfg.Server.RateLimit)
	}
	if v := getenv("SENTIMETER_SERVER_RATE_BURST", ""); v != "" {
		cfg.Server.RateBurst = parseInt(v, cfg.Server.RateBurst)
	}

	// Proxy
	if v := getenv("SENTIMETER_PROXY_URL", ""); v != "" {
		cfg.ProxyURL = v
	}
	if v := getenv("SENTIMETER_NO_PROXY", ""); v != "" {
		cfg.NoProxy = v
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// newFlagSet define los flags de CLI sobre cfg; los valores actuales de cfg
// son los defaults, así que solo los flags presentes sobrescriben.
func newFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("sentimeter", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVarP(&cfg.Text, "text", "x", cfg.Text, "Text to analyze (single shot)")
	fs.StringVarP(&cfg.Format, "format", "f", cfg.Format, "Output format: pretty, json, text")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Print nothing, only the exit code")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Fail on labels that are not negative/neutral/positive")
	fs.IntVar(&cfg.MaxTextRunes, "max-chars", cfg.MaxTextRunes, "Maximum text length in characters")
	fs.IntVarP(&cfg.TimeoutS, "timeout", "T", cfg.TimeoutS, "Global timeout in seconds for single shot, 0=no timeout")
	fs.StringVarP(&cfg.ConfigPath, "config", "c", cfg.ConfigPath, "YAML configuration file")

	// Classifier
	fs.StringVarP(&cfg.Classifier.Model, "model", "m", cfg.Classifier.Model, "Hugging Face model id")
	fs.StringVar(&cfg.Classifier.Endpoint, "endpoint", cfg.Classifier.Endpoint, "Inference endpoint URL (overrides --model URL)")
	fs.BoolVar(&cfg.Classifier.WaitForModel, "wait-for-model", cfg.Classifier.WaitForModel, "Ask the API to wait while the model loads")
	fs.StringToStringVar(&cfg.Classifier.LabelMap, "label-map", cfg.Classifier.LabelMap, "Rename raw labels, e.g. LABEL_0=negative,LABEL_2=positive")
	fs.DurationVar(&cfg.Classifier.Timeout, "request-timeout", cfg.Classifier.Timeout, "Timeout per classifier request")
	fs.Float64Var(&cfg.Classifier.RateLimit, "rate", cfg.Classifier.RateLimit, "Classifier requests per second, 0=unlimited")
	fs.IntVar(&cfg.Classifier.RateBurst, "burst", cfg.Classifier.RateBurst, "Classifier request burst")

	// Resilience
	fs.IntVarP(&cfg.Resilience.MaxRetries, "retries", "r", cfg.Resilience.MaxRetries, "Max retries per classifier request")
	fs.DurationVar(&cfg.Resilience.BackoffBase, "backoff", cfg.Resilience.BackoffBase, "Base retry backoff")
	fs.BoolVar(&cfg.Resilience.CircuitBreakerEnabled, "circuit-breaker", cfg.Resilience.CircuitBreakerEnabled, "Enable the classifier circuit breaker")

	// Server
	fs.BoolVarP(&cfg.Server.Enabled, "serve", "s", cfg.Server.Enabled, "Run the web front end")
	fs.StringVarP(&cfg.Server.Addr, "addr", "a", cfg.Server.Addr, "Web listen address")
	fs.BoolVar(&cfg.Server.Metrics, "metrics", cfg.Server.Metrics, "Expose /metrics in web mode")
	fs.Float64Var(&cfg.Server.RateLimit, "client-rate", cfg.Server.RateLimit, "Analyses per second per web client, 0=unlimited")
	fs.IntVar(&cfg.Server.RateBurst, "client-burst", cfg.Server.RateBurst, "Analysis burst per web client")

	// Proxy
	fs.StringVarP(&cfg.ProxyURL, "proxy", "p", cfg.ProxyURL, "HTTP(S) proxy URL for classifier requests")
	fs.StringVar(&cfg.NoProxy, "no-proxy", cfg.NoProxy, "Comma-separated hosts that bypass the proxy")

	// Log
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Log.JSON, "log-json", cfg.Log.JSON, "Write logs as JSON")

	fs.BoolVarP(&cfg.PrintVersion, "version", "v", false, "Print version and exit")
	fs.BoolP("help", "h", false, "Show help")

	return fs
}

func wantsHelp(fs *pflag.FlagSet) bool {
	h, err := fs.GetBool("help")
	return err == nil && h
}

func normalize(c *Config) {
	c.Text = strings.TrimSpace(c.Text)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = FormatPretty
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Classifier.Model = strings.Trim(strings.TrimSpace(c.Classifier.Model), "/")
	c.Classifier.Endpoint = strings.TrimSpace(c.Classifier.Endpoint)
	c.Classifier.Token = strings.TrimSpace(c.Classifier.Token)
	if c.TimeoutS < 0 {
		c.TimeoutS = 0
	}
	if c.Classifier.RateLimit > 0 && c.Classifier.RateBurst < 1 {
		c.Classifier.RateBurst = 1
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		c.Server.RateBurst = 1
	}
	if c.Resilience.MaxRetries < 0 {
		c.Resilience.MaxRetries = 0
	}
	if c.Resilience.MaxBackoff < c.Resilience.BackoffBase {
		c.Resilience.MaxBackoff = c.Resilience.BackoffBase
	}
}

// ValidationError agrupa todos los problemas encontrados en una configuración.
// Es de tipo invalid input: el binario sale con código 2.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return errors.ErrInvalidInput
}

// Validate comprueba que la configuración sea utilizable.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	switch c.Format {
	case FormatPretty, FormatJSON, FormatText:
	default:
		add("format %q must be one of pretty, json, text", c.Format)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		add("log level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	if c.MaxTextRunes <= 0 {
		add("max_text_runes must be positive, got %d", c.MaxTextRunes)
	}

	if !validator.IsModelID(c.Classifier.Model) {
		add("model %q is not a valid model id", c.Classifier.Model)
	}
	if c.Classifier.Endpoint != "" && !validator.IsHTTPURL(c.Classifier.Endpoint) {
		add("endpoint %q must be an http(s) URL", c.Classifier.Endpoint)
	}
	if c.Classifier.Timeout <= 0 {
		add("classifier timeout must be positive, got %s", c.Classifier.Timeout)
	}
	if c.Classifier.RateLimit < 0 {
		add("rate limit must not be negative, got %g", c.Classifier.RateLimit)
	}
	for raw, mapped := range c.Classifier.LabelMap {
		if strings.TrimSpace(raw) == "" || strings.TrimSpace(mapped) == "" {
			add("label_map entry %q=%q has an empty side", raw, mapped)
		}
	}

	if c.Resilience.BackoffBase <= 0 {
		add("backoff base must be positive, got %s", c.Resilience.BackoffBase)
	}
	if c.Resilience.CircuitBreakerEnabled {
		if c.Resilience.CircuitBreakerThreshold < 1 {
			add("circuit breaker threshold must be at least 1, got %d", c.Resilience.CircuitBreakerThreshold)
		}
		if c.Resilience.CircuitBreakerTimeout <= 0 {
			add("circuit breaker timeout must be positive, got %s", c.Resilience.CircuitBreakerTimeout)
		}
		if c.Resilience.CircuitBreakerHalfOpenMax < 1 {
			add("circuit breaker half-open max must be at least 1, got %d", c.Resilience.CircuitBreakerHalfOpenMax)
		}
	}

	if c.Server.Enabled && !validator.IsListenAddr(c.Server.Addr) {
		add("server addr %q must be host:port", c.Server.Addr)
	}
	if c.Server.RateLimit < 0 {
		add("client rate limit must not be negative, got %g", c.Server.RateLimit)
	}
	if c.ProxyURL != "" && !validator.IsURL(c.ProxyURL) {
		add("proxy %q is not a valid URL", c.ProxyURL)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// EndpointURL devuelve la URL completa del modelo configurado.
func (c Classifier) EndpointURL() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return DefaultEndpointBase + c.Model
}

// LogLevel resuelve el nivel de log efectivo. Sin nivel explícito, el modo
// interactivo con salida pretty usa warn para no mezclar logs con la UI.
func (c Config) LogLevel(interactive bool) string {
	if c.Log.Level != "" {
		return c.Log.Level
	}
	if interactive && c.Format == FormatPretty {
		return "warn"
	}
	return "info"
}

// ToJSON serializa la configuración a JSON (útil para debugging).
// El token nunca se incluye en claro.
func (c Config) ToJSON() (string, error) {
	if c.Classifier.Token != "" {
		c.Classifier.Token = "***"
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Timeout devuelve un time.Duration útil si prefieres trabajar con duración.
func (c Config) Timeout() time.Duration {
	if c.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutS) * time.Second
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// parseDuration acepta duraciones de Go ("1.5s") o segundos enteros ("30").
func parseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// parseLabelMap lee "LABEL_0=negative,LABEL_1=neutral".
func parseLabelMap(v string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(v, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		raw, mapped, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("entry %q is not raw=mapped", pair)
		}
		out[strings.TrimSpace(raw)] = strings.TrimSpace(mapped)
	}
	return out, nil
}
