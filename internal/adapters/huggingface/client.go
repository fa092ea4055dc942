// internal/adapters/huggingface/client.go
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/httpclient"
	"sentimeter/internal/platform/logx"
)

// Config configura el clasificador de Hugging Face.
type Config struct {
	// Model id del modelo en el Hub (e.g. "cardiffnlp/twitter-roberta-base-sentiment-latest")
	Model string

	// Endpoint URL completa del modelo
	Endpoint string

	// Token bearer opcional
	Token string

	// WaitForModel pide a la API esperar mientras el modelo carga en vez de responder 503
	WaitForModel bool

	// LabelMap renombra etiquetas crudas (e.g. "LABEL_0" -> "negative")
	LabelMap map[string]string

	// HTTP configuración del cliente (timeouts, retries, rate limit, proxy)
	HTTP httpclient.Config
}

// Classifier implementa ports.Classifier contra el Inference API de
// Hugging Face (tarea text-classification).
type Classifier struct {
	client       *httpclient.Client
	model        string
	endpoint     string
	token        string
	waitForModel bool
	labelMap     map[string]string
	logger       logx.Logger
}

type request struct {
	Inputs  string  `json:"inputs"`
	Options options `json:"options"`
}

type options struct {
	WaitForModel bool `json:"wait_for_model"`
}

type rawScore struct {
	Label string   `json:"label"`
	Score *float64 `json:"score"`
}

type apiErrorBody struct {
	Error         json.RawMessage `json:"error"`
	EstimatedTime float64         `json:"estimated_time"`
}

// New crea un nuevo clasificador.
func New(cfg Config, logger logx.Logger) *Classifier {
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = "sentimeter/1.0 (+text-classification)"
	}

	labelMap := make(map[string]string, len(cfg.LabelMap))
	for raw, mapped := range cfg.LabelMap {
		labelMap[strings.ToLower(strings.TrimSpace(raw))] = strings.TrimSpace(mapped)
	}

	return &Classifier{
		client:       httpclient.New(cfg.HTTP, logger),
		model:        cfg.Model,
		endpoint:     cfg.Endpoint,
		token:        cfg.Token,
		waitForModel: cfg.WaitForModel,
		labelMap:     labelMap,
		logger:       logger.With("classifier", "huggingface", "model", cfg.Model),
	}
}

// Name retorna el nombre del clasificador.
func (c *Classifier) Name() string {
	return "huggingface/" + c.model
}

// Classify envía el texto al modelo y retorna un score por clase, en el
// orden que entrega la API.
func (c *Classifier) Classify(ctx context.Context, text string) ([]domain.ClassScore, error) {
	payload, err := json.Marshal(request{
		Inputs:  text,
		Options: options{WaitForModel: c.waitForModel},
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode inference request")
	}

	var headers map[string]string
	if c.token != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.token}
	}

	c.logger.Debug("classifying text", "chars", len([]rune(text)))

	resp, err := c.client.PostJSON(ctx, c.endpoint, payload, headers)
	if err != nil {
		return nil, c.wrap(err)
	}

	if err := httpclient.CheckStatus(resp); err != nil {
		return nil, c.wrap(httpclient.NewStatusError(resp))
	}

	body, err := httpclient.ReadBody(resp)
	if err != nil {
		return nil, c.wrap(err)
	}

	scores, err := decodeScores(body)
	if err != nil {
		return nil, c.wrap(err)
	}

	for i := range scores {
		scores[i].Label = c.mapLabel(scores[i].Label)
	}

	c.logger.Debug("classification received", "scores", domain.Scores(scores).Labels())

	return scores, nil
}

func (c *Classifier) mapLabel(label string) string {
	if mapped, ok := c.labelMap[strings.ToLower(label)]; ok {
		return mapped
	}
	return label
}

// wrap añade contexto y, si la API devolvió un cuerpo de error, su mensaje.
func (c *Classifier) wrap(err error) error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		if msg := apiErrorMessage(statusErr.Body); msg != "" {
			return errors.Wrapf(err, "huggingface %s: %s", c.model, msg)
		}
	}
	return errors.Wrapf(err, "huggingface %s", c.model)
}

// decodeScores acepta [[{label,score}...]] (una entrada) y [{label,score}...].
func decodeScores(body []byte) ([]domain.ClassScore, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidResponse, "empty body")
	}

	if trimmed[0] == '{' {
		if msg := apiErrorMessage(trimmed); msg != "" {
			return nil, errors.Wrap(errors.ErrInvalidResponse, msg)
		}
		return nil, errors.Wrap(errors.ErrInvalidResponse, "expected a list of scores, got an object")
	}

	var raw []rawScore
	var nested [][]rawScore
	if err := json.Unmarshal(trimmed, &nested); err == nil {
		if len(nested) > 0 {
			raw = nested[0]
		}
	} else if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidResponse, "decode scores: %v", err)
	}

	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidResponse, "no scores returned")
	}

	scores := make([]domain.ClassScore, 0, len(raw))
	for i, r := range raw {
		if strings.TrimSpace(r.Label) == "" || r.Score == nil {
			return nil, errors.Wrapf(errors.ErrInvalidResponse, "score %d is missing label or score", i)
		}
		scores = append(scores, domain.NewClassScore(r.Label, *r.Score))
	}

	return scores, nil
}

// apiErrorMessage extrae el mensaje de {"error": "...", "estimated_time": n}.
// El campo error puede ser un string o una lista de strings.
func apiErrorMessage(body []byte) string {
	var e apiErrorBody
	if err := json.Unmarshal(body, &e); err != nil || len(e.Error) == 0 {
		return ""
	}

	var msg string
	var single string
	var many []string
	switch {
	case json.Unmarshal(e.Error, &single) == nil:
		msg = single
	case json.Unmarshal(e.Error, &many) == nil:
		msg = strings.Join(many, "; ")
	default:
		msg = string(e.Error)
	}

	if e.EstimatedTime > 0 {
		msg = fmt.Sprintf("%s (estimated_time=%.0fs)", msg, e.EstimatedTime)
	}
	return msg
}
