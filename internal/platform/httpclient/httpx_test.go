package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/logx"
)

func testLogger() logx.Logger {
	return logx.NewSilent()
}

func TestNew(t *testing.T) {
	logger := testLogger()

	t.Run("applies defaults for zero values", func(t *testing.T) {
		client := New(Config{}, logger)

		assert.Equal(t, 30*time.Second, client.config.Timeout)
		assert.Equal(t, 500*time.Millisecond, client.config.RetryBackoff)
		assert.Equal(t, 10*time.Second, client.config.MaxRetryBackoff)
		assert.Equal(t, "sentimeter/1.0", client.config.UserAgent)
		assert.Equal(t, 1, client.config.RateLimitBurst)
	})

	t.Run("creates rate limiter when configured", func(t *testing.T) {
		client := New(Config{RateLimit: 10, RateLimitBurst: 5}, logger)

		require.NotNil(t, client.rateLimiter)
		assert.Equal(t, 5, client.rateLimiter.Burst())
	})

	t.Run("does not create rate limiter when disabled", func(t *testing.T) {
		client := New(Config{RateLimit: 0}, logger)
		assert.Nil(t, client.rateLimiter)
	})
}

func TestClient_PostJSON(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer hf_x", r.Header.Get("Authorization"))
		assert.Equal(t, "sentimeter/1.0", r.Header.Get("User-Agent"))
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(Config{}, testLogger())
	resp, err := client.PostJSON(context.Background(), server.URL, []byte(`{"inputs":"hi"}`),
		map[string]string{"Authorization": "Bearer hf_x"})
	require.NoError(t, err)

	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
	assert.Equal(t, `{"inputs":"hi"}`, gotBody)
}

func TestClient_Retry(t *testing.T) {
	logger := testLogger()

	t.Run("retries on 503 and replays the body", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			assert.Equal(t, "payload", string(b), "body must be resent on every attempt")
			if atomic.AddInt32(&attempts, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := New(Config{MaxRetries: 3, RetryBackoff: time.Millisecond}, logger)

		resp, err := client.Post(context.Background(), server.URL, []byte("payload"), nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	})

	t.Run("does not retry on 404", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := New(Config{MaxRetries: 3, RetryBackoff: time.Millisecond}, logger)

		resp, err := client.Post(context.Background(), server.URL, nil, nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("exhausts retries and returns a status error", func(t *testing.T) {
		var attempts int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&attempts, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Model is currently loading","estimated_time":20.0}`))
		}))
		defer server.Close()

		client := New(Config{MaxRetries: 2, RetryBackoff: time.Millisecond}, logger)

		_, err := client.Post(context.Background(), server.URL, nil, nil)
		require.Error(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts), "1 attempt + 2 retries")
		assert.True(t, errors.IsServiceUnavailable(err))
		assert.Contains(t, err.Error(), "after 3 attempts")

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
		assert.Contains(t, string(statusErr.Body), "Model is currently loading")
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := New(Config{MaxRetries: 10, RetryBackoff: time.Second}, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := client.Post(ctx, server.URL, nil, nil)
		require.Error(t, err)
		assert.True(t, errors.IsTimeout(err))
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestClient_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(Config{RateLimit: 10, RateLimitBurst: 2}, testLogger())

	start := time.Now()

	// burst of 2, then 3 more at 10/s
	for i := 0; i < 5; i++ {
		resp, err := client.Post(context.Background(), server.URL, nil, nil)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.GreaterOrEqual(t, time.Since(start), 250*time.Millisecond)
}

func TestProxyFunc(t *testing.T) {
	target := func(raw string) *http.Request {
		u, err := url.Parse(raw)
		require.NoError(t, err)
		return &http.Request{URL: u}
	}

	t.Run("explicit proxy for both schemes", func(t *testing.T) {
		fn := proxyFunc(Config{ProxyURL: "http://proxy.internal:3128"})

		for _, raw := range []string{"https://router.huggingface.co/x", "http://example.com/"} {
			u, err := fn(target(raw))
			require.NoError(t, err)
			require.NotNil(t, u)
			assert.Equal(t, "proxy.internal:3128", u.Host)
		}
	})

	t.Run("no proxy bypass", func(t *testing.T) {
		fn := proxyFunc(Config{ProxyURL: "http://proxy.internal:3128", NoProxy: "huggingface.co"})

		u, err := fn(target("https://router.huggingface.co/x"))
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("localhost is never proxied", func(t *testing.T) {
		fn := proxyFunc(Config{ProxyURL: "http://proxy.internal:3128"})

		u, err := fn(target("http://127.0.0.1:8080/"))
		require.NoError(t, err)
		assert.Nil(t, u)
	})
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusOK, nil},
		{http.StatusNoContent, nil},
		{http.StatusBadRequest, errors.ErrInvalidResponse},
		{http.StatusUnauthorized, errors.ErrUnauthorized},
		{http.StatusForbidden, errors.ErrUnauthorized},
		{http.StatusNotFound, errors.ErrNotFound},
		{http.StatusTooManyRequests, errors.ErrRateLimit},
		{http.StatusBadGateway, errors.ErrServiceUnavailable},
		{http.StatusServiceUnavailable, errors.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			err := CheckStatus(&http.Response{StatusCode: tt.code})
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	err := CheckStatus(&http.Response{StatusCode: http.StatusTeapot, Status: "418 I'm a teapot"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "418")
	assert.Error(t, CheckStatus(nil))
}

func TestNewStatusError(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusUnauthorized,
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", maxErrorBodyBytes+100))),
	}

	err := NewStatusError(resp)

	assert.Len(t, err.Body, maxErrorBodyBytes)
	assert.True(t, errors.IsUnauthorized(err))
	assert.Equal(t, "HTTP 401: unauthorized", err.Error())
}

func TestReadBody(t *testing.T) {
	resp := &http.Response{Body: io.NopCloser(strings.NewReader("hello"))}

	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	_, err = ReadBody(nil)
	assert.Error(t, err)
}

func TestClient_String(t *testing.T) {
	client := New(Config{Timeout: 5 * time.Second, MaxRetries: 2, RateLimit: 1.5}, testLogger())
	assert.Equal(t, "HTTPClient{timeout=5s, max_retries=2, rate_limit=1.5/s}", client.String())
}
