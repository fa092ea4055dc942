// cmd/sentimeter/app.go
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"sentimeter/internal/adapters/huggingface"
	"sentimeter/internal/adapters/web"
	"sentimeter/internal/core/interpreter"
	"sentimeter/internal/core/ports"
	"sentimeter/internal/core/usecases"
	"sentimeter/internal/platform/config"
	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/httpclient"
	"sentimeter/internal/platform/logx"
	"sentimeter/internal/platform/metrics"
	"sentimeter/internal/platform/resilience"
	"sentimeter/internal/platform/ui"
)

// Exit codes
const (
	exitOK         = 0
	exitClassifier = 1
	exitInvalid    = 2
)

// stdio agrupa la entrada/salida del proceso para poder testear run.
type stdio struct {
	in    io.Reader
	out   io.Writer
	err   io.Writer
	inTTY bool
}

// run ejecuta el binario completo y retorna el código de salida.
func run(args []string, std stdio) int {
	// 1. Config (defaults -> YAML -> ENV -> flags)
	cfg, err := config.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelp) {
			config.PrintHelp(std.out)
			return exitOK
		}
		fmt.Fprintf(std.err, "Error: %v\n", err)
		fmt.Fprintln(std.err, "Try: sentimeter -h for help")
		return exitInvalid
	}
	if cfg.PrintVersion {
		config.PrintVersion(std.out, version, commit, date)
		return exitOK
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(std.err, "Error: %v\n", err)
		return exitInvalid
	}

	mode := chooseMode(cfg, std.inTTY)

	// 2. Logger compartido
	logger := logx.NewWithOptions(logx.Options{
		Writer: std.err,
		Level:  logx.ParseLevel(cfg.LogLevel(mode != ui.ModeServe)),
		JSON:   cfg.Log.JSON,
	})
	logger.Debug("sentimeter starting",
		"version", version,
		"commit", commit,
		"mode", string(mode),
		"model", cfg.Classifier.Model,
		"strict", cfg.Strict,
	)

	// 3. Métricas solo donde hay quien las lea
	var reg *prometheus.Registry
	if mode == ui.ModeServe && cfg.Server.Metrics {
		reg = metrics.NewRegistry()
	}

	// 4. Clasificador + análisis
	classifier := buildClassifier(cfg, reg, logger)
	analyzer := buildAnalyzer(cfg, classifier, reg, logger)

	switch mode {
	case ui.ModeServe:
		return runServe(cfg, analyzer, reg, logger)
	case ui.ModeInteractive:
		return runInteractive(cfg, analyzer, std, logger)
	default:
		text := cfg.Text
		if text == "" {
			text, err = readInput(std.in, cfg.MaxTextRunes)
			if err != nil {
				logger.Err(err, "phase", "input")
				return exitInvalid
			}
		}
		return runSingle(cfg, analyzer, text, std)
	}
}

// chooseMode: --serve gana; sin texto y con stdin en terminal, prompt interactivo.
func chooseMode(cfg config.Config, stdinTTY bool) ui.Mode {
	switch {
	case cfg.Server.Enabled:
		return ui.ModeServe
	case cfg.Text == "" && stdinTTY:
		return ui.ModeInteractive
	default:
		return ui.ModeSingle
	}
}

// buildClassifier construye el cliente de Hugging Face y, si está habilitado,
// lo envuelve con el circuit breaker.
func buildClassifier(cfg config.Config, reg *prometheus.Registry, logger logx.Logger) ports.Classifier {
	hf := huggingface.New(huggingface.Config{
		Model:        cfg.Classifier.Model,
		Endpoint:     cfg.Classifier.EndpointURL(),
		Token:        cfg.Classifier.Token,
		WaitForModel: cfg.Classifier.WaitForModel,
		LabelMap:     cfg.Classifier.LabelMap,
		HTTP: httpclient.Config{
			Timeout:         cfg.Classifier.Timeout,
			MaxRetries:      cfg.Resilience.MaxRetries,
			RetryBackoff:    cfg.Resilience.BackoffBase,
			MaxRetryBackoff: cfg.Resilience.MaxBackoff,
			UserAgent:       "sentimeter/" + version,
			RateLimit:       cfg.Classifier.RateLimit,
			RateLimitBurst:  cfg.Classifier.RateBurst,
			ProxyURL:        cfg.ProxyURL,
			NoProxy:         cfg.NoProxy,
		},
	}, logger)

	if !cfg.Resilience.CircuitBreakerEnabled {
		logger.Debug("circuit breaker disabled, using classifier directly")
		return hf
	}

	var breakerMetrics *metrics.BreakerMetrics
	if reg != nil {
		breakerMetrics = metrics.NewBreakerMetrics(reg)
		breakerMetrics.Init(hf.Name())
	}

	cb := resilience.NewCircuitBreaker(resilience.Settings{
		Name:             hf.Name(),
		FailureThreshold: cfg.Resilience.CircuitBreakerThreshold,
		Timeout:          cfg.Resilience.CircuitBreakerTimeout,
		HalfOpenMax:      cfg.Resilience.CircuitBreakerHalfOpenMax,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			if breakerMetrics != nil {
				breakerMetrics.OnStateChange(name, from, to)
			}
		},
	})

	return resilience.NewGuardedClassifier(hf, cb, logger)
}

func buildAnalyzer(cfg config.Config, classifier ports.Classifier, reg *prometheus.Registry, logger logx.Logger) *usecases.Analyzer {
	var observers []ports.AnalysisObserver
	if reg != nil {
		observers = append(observers, metrics.NewAnalysisMetrics(reg))
	}

	return usecases.NewAnalyzer(usecases.AnalyzerOptions{
		Classifier:  classifier,
		Interpreter: interpreter.New(interpreter.WithStrict(cfg.Strict)),
		Observers:   observers,
		Logger:      logger,
		MaxRunes:    cfg.MaxTextRunes,
		Timeout:     cfg.Timeout(),
	})
}

// runSingle analiza un texto, lo muestra y sale.
func runSingle(cfg config.Config, analyzer *usecases.Analyzer, text string, std stdio) int {
	ctx, cancel := rootContextWithSignals(cfg.Timeout())
	defer cancel()

	presenter := ui.New(ui.Options{Format: cfg.Format, Quiet: cfg.Quiet, Writer: std.out})
	defer presenter.Close()

	presenter.Start(ui.SessionInfo{
		Classifier: analyzer.ClassifierName(),
		Mode:       ui.ModeSingle,
		Strict:     analyzer.Strict(),
		Version:    version,
	})
	presenter.StartAnalysis(text)

	analysis, err := analyzer.Analyze(ctx, text)
	if err != nil {
		presenter.Error(usecases.UserMessage(err))
		return exitCode(err)
	}

	presenter.ShowAnalysis(analysis)
	return exitOK
}

// runInteractive corre el bucle de prompts hasta que el usuario termine.
func runInteractive(cfg config.Config, analyzer *usecases.Analyzer, std stdio, logger logx.Logger) int {
	ctx, cancel := rootContextWithSignals(0)
	defer cancel()

	presenter := ui.New(ui.Options{Format: cfg.Format, Quiet: cfg.Quiet, Writer: std.out, Interactive: true})
	defer presenter.Close()

	presenter.Start(ui.SessionInfo{
		Classifier: analyzer.ClassifierName(),
		Mode:       ui.ModeInteractive,
		Strict:     analyzer.Strict(),
		Version:    version,
	})

	session := usecases.NewSession(analyzer, ui.NewPTermPrompter(), presenter, logger)
	stats, err := session.Run(ctx)
	if err != nil {
		logger.Err(err, "phase", "session")
		return exitClassifier
	}

	logger.Info("session finished", "analyses", stats.Analyses, "failures", stats.Failures, "blank", stats.Blank)
	return exitOK
}

// runServe levanta el front end web hasta SIGINT/SIGTERM.
func runServe(cfg config.Config, analyzer *usecases.Analyzer, reg *prometheus.Registry, logger logx.Logger) int {
	ctx, cancel := rootContextWithSignals(0)
	defer cancel()

	gin.SetMode(gin.ReleaseMode)

	srv, err := web.New(web.Config{
		Addr:       cfg.Server.Addr,
		Version:    version,
		Classifier: analyzer.ClassifierName(),
		MaxRunes:   cfg.MaxTextRunes,
		RateLimit:  cfg.Server.RateLimit,
		RateBurst:  cfg.Server.RateBurst,
		Registry:   reg,
	}, analyzer, logger)
	if err != nil {
		logger.Err(err, "phase", "web-build")
		return exitInvalid
	}

	if err := srv.Run(ctx); err != nil {
		logger.Err(err, "phase", "serve")
		return exitClassifier
	}
	return exitOK
}

// readInput lee el texto de un pipe. Lee un poco más que el límite para que
// el analizador pueda rechazar textos largos en vez de truncarlos en silencio.
func readInput(r io.Reader, maxRunes int) (string, error) {
	if r == nil {
		return "", nil
	}
	limit := int64(maxRunes)*4 + 4
	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	return strings.TrimSpace(string(data)), nil
}

// exitCode: 2 para entrada inválida, 1 para cualquier fallo del clasificador.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.IsInvalidInput(err):
		return exitInvalid
	default:
		return exitClassifier
	}
}
