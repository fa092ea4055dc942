// internal/adapters/web/handlers.go
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/core/usecases"
	"sentimeter/internal/platform/errors"
)

// analyzeRequest es el cuerpo de POST /api/v1/analyze
type analyzeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPageView(s.cfg.Classifier, s.cfg.MaxRunes, getRequestID(c)))
}

// handleForm renders the page again with the result (or the reason there is none).
func (s *Server) handleForm(c *gin.Context) {
	page := newPageView(s.cfg.Classifier, s.cfg.MaxRunes, getRequestID(c))
	page.Text = c.PostForm("text")

	analysis, err := s.analyzer.Analyze(c.Request.Context(), page.Text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyText) {
			page.Warning = usecases.UserMessage(err)
		} else {
			page.Error = usecases.UserMessage(err)
		}
		c.HTML(StatusFor(err), "index.html", page)
		return
	}

	page.Result = newResultView(analysis)
	c.HTML(http.StatusOK, "index.html", page)
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, errors.Wrapf(errors.ErrInvalidInput, "invalid request body: %v", err))
		return
	}

	analysis, err := s.analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAnalyzeResponse(analysis, getRequestID(c)))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"classifier": s.cfg.Classifier,
		"version":    s.cfg.Version,
		"uptime":     time.Since(s.startTime).Seconds(),
	})
}

func (s *Server) writeError(c *gin.Context, err error) {
	c.JSON(StatusFor(err), errorResponse{
		Error:     errorBody{Kind: errorKind(err), Message: usecases.UserMessage(err)},
		RequestID: getRequestID(c),
	})
}

// StatusFor maps an analysis error to an HTTP status.
// Caller mistakes are 400, a temporarily unusable classifier is 503,
// and any other classifier failure is a 502.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnrecognizedLabel), errors.IsInvalidResponse(err):
		return http.StatusBadGateway
	case errors.IsServiceUnavailable(err), errors.IsRateLimit(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// errorKind adds the one kind errors.Kind does not know about.
func errorKind(err error) string {
	if errors.Is(err, domain.ErrUnrecognizedLabel) {
		return "unrecognized_label"
	}
	return errors.Kind(err)
}
