package ask_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/docubot/docubot/internal/api"
	"github.com/docubot/docubot/internal/config"
	"github.com/docubot/docubot/internal/docs"
	"github.com/docubot/docubot/internal/security"
	"github.com/docubot/docubot/internal/service"
	"github.com/docubot/docubot/internal/slack"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Docs: config.DocsConfig{
			BaseURL:        "http://unused.invalid",
			Name:           "App Builder",
			FetchTimeout:   1,
			PageCharLimit:  6000,
			TotalCharLimit: 15000,
		},
		LLM:       config.LLMConfig{BaseURL: "http://unused.invalid", Model: "m", MaxTokens: 16, Timeout: 1},
		RateLimit: config.RateLimitConfig{WindowSeconds: 60, MaxRequests: 2},
	}
	limiter := security.NewRateLimiter(cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests)
	fetcher := docs.NewFetcher(zap.NewNop(), cfg.Docs.Timeout(), cfg.Docs.PageCharLimit, cfg.Docs.TotalCharLimit)
	webhook := slack.NewWebhook(time.Second)
	svc := service.NewAskService(cfg, zap.NewNop(), limiter, fetcher, webhook, nil)

	return api.SetupRouter(svc, zap.NewNop(), api.RouterConfig{})
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Ask(t *testing.T) {
	t.Run("Should acknowledge a slash-command payload inline", func(t *testing.T) {
		r := newTestRouter(t)
		w := postForm(r, "/slack/command", url.Values{
			"user_id":      {"U100"},
			"text":         {"How do I deploy my app?"},
			"response_url": {"http://unused.invalid/hook"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var msg slack.Message
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
		assert.Equal(t, "in_channel", msg.ResponseType)
		assert.Contains(t, msg.Text, "thinking")
	})
	t.Run("Should answer cost questions with blocks inline", func(t *testing.T) {
		r := newTestRouter(t)
		w := postForm(r, "/ask", url.Values{
			"user_id": {"U101"},
			"text":    {"What is the pricing for 512MB?"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var msg slack.Message
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
		require.NotEmpty(t, msg.Blocks)
		assert.Contains(t, msg.Blocks[0].Text.Text, "Cost Calculator")
	})
	t.Run("Should accept a JSON request with overrides", func(t *testing.T) {
		r := newTestRouter(t)
		body := `{"user_id":"U102","text":"What is the pricing for 512MB?","overrides":{"docs_name":"My Docs"}}`
		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var msg slack.Message
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
		require.NotEmpty(t, msg.Blocks)
	})
	t.Run("Should reject malformed JSON", func(t *testing.T) {
		r := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
	t.Run("Should rate limit repeated questions from one user", func(t *testing.T) {
		r := newTestRouter(t)
		form := url.Values{"user_id": {"U103"}, "text": {"What is the pricing for 512MB?"}}
		postForm(r, "/ask", form)
		postForm(r, "/ask", form)
		w := postForm(r, "/ask", form)
		require.Equal(t, http.StatusOK, w.Code)

		var msg slack.Message
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
		require.NotEmpty(t, msg.Blocks)
		assert.Contains(t, msg.Blocks[0].Text.Text, "Rate limit exceeded")
	})
	t.Run("Should expose a health endpoint", func(t *testing.T) {
		r := newTestRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ok")
	})
}
