package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docubot/docubot/internal/config"
	"github.com/docubot/docubot/internal/cost"
	"github.com/docubot/docubot/internal/docs"
	"github.com/docubot/docubot/internal/domain"
	"github.com/docubot/docubot/internal/llm"
	"github.com/docubot/docubot/internal/security"
	"github.com/docubot/docubot/internal/slack"
)

// Completer produces a raw completion for a question and documentation excerpt
type Completer interface {
	Complete(ctx context.Context, question, docContent string) (string, error)
}

// CompleterFactory builds a Completer from request-scoped options. The
// factory runs once per request because overrides can change the credential
// and documentation identity.
type CompleterFactory func(llm.Options) Completer

// AskService runs the question pipeline: rate limit, validate, cost fast
// path, then acknowledge and answer asynchronously through retrieval and
// completion.
type AskService struct {
	cfg          *config.Config
	logger       *zap.Logger
	limiter      *security.RateLimiter
	fetcher      *docs.Fetcher
	webhook      *slack.Webhook
	newCompleter CompleterFactory
}

// requestConfig is the effective configuration for one request: server
// configuration with the request's overrides merged into a copy.
type requestConfig struct {
	docsBaseURL string
	docsName    string
	apiKey      string
}

// NewAskService creates the pipeline service. A nil factory uses the real
// completion client.
func NewAskService(
	cfg *config.Config,
	logger *zap.Logger,
	limiter *security.RateLimiter,
	fetcher *docs.Fetcher,
	webhook *slack.Webhook,
	newCompleter CompleterFactory,
) *AskService {
	if newCompleter == nil {
		newCompleter = func(opts llm.Options) Completer { return llm.NewClient(opts) }
	}
	return &AskService{
		cfg:          cfg,
		logger:       logger,
		limiter:      limiter,
		fetcher:      fetcher,
		webhook:      webhook,
		newCompleter: newCompleter,
	}
}

// Ask handles a question synchronously up to the acknowledgment. Rate-limit
// rejections, validation failures and cost answers are terminal here; any
// other question gets a thinking ack while the answer is produced in the
// background and delivered to the request's response_url.
func (s *AskService) Ask(req *domain.AskRequest) (msg *slack.Message) {
	logger := s.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("user_id", req.Identity()),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in ask pipeline", zap.Any("panic", r))
			msg = genericErrorMessage()
		}
	}()

	rl := s.limiter.Check(req.Identity())
	if !rl.Allowed {
		logger.Info("Request rate limited", zap.Int("reset_in", rl.ResetIn))
		return slack.NewMessage(
			slack.BotHeader+"\n\n⚠️ Rate limit exceeded",
			fmt.Sprintf("Please wait %d seconds before asking another question. You can ask up to %d questions per minute.",
				rl.ResetIn, s.cfg.RateLimit.MaxRequests),
			"",
		)
	}

	v := security.Validate(req.Text)
	if !v.Valid {
		logger.Info("Question rejected", zap.String("reason", v.Err))
		return slack.NewMessage(slack.BotHeader+"\n\n❌ Invalid question", v.Err, "")
	}
	question := v.Sanitized

	logger.Info("Question accepted",
		zap.String("question", question),
		zap.Int("rate_limit_remaining", rl.Remaining),
	)

	if cost.IsCostQuestion(question) {
		logger.Info("Answering on the cost fast path")
		r := cost.Calculate(question)
		return slack.NewMessage(r.Answer, r.ProTip, r.LearnMoreURL)
	}

	rc := s.requestConfig(req.Overrides)
	go s.processAsync(question, req.ResponseURL, rc, logger)

	return slack.Ack("🤖 *DocuBot is thinking...* 🔍")
}

// requestConfig merges request overrides onto the server configuration
func (s *AskService) requestConfig(o domain.Overrides) requestConfig {
	rc := requestConfig{
		docsBaseURL: s.cfg.Docs.BaseURL,
		docsName:    s.cfg.Docs.Name,
		apiKey:      s.cfg.LLM.APIKey,
	}
	if o.DocsBaseURL != "" {
		rc.docsBaseURL = o.DocsBaseURL
	}
	if o.DocsName != "" {
		rc.docsName = o.DocsName
	}
	if o.APIKey != "" {
		rc.apiKey = o.APIKey
	}
	return rc
}

// processAsync produces the final answer and delivers it exactly once to the
// response_url. Runs detached from the synchronous response path.
func (s *AskService) processAsync(question, responseURL string, rc requestConfig, logger *zap.Logger) {
	msg := s.answer(context.Background(), question, rc, logger)
	if err := s.webhook.Deliver(context.Background(), responseURL, msg); err != nil {
		logger.Error("Failed to deliver deferred response", zap.Error(err))
		return
	}
	logger.Info("Response sent successfully")
}

// answer walks retrieval and completion and always returns a terminal
// message; errors and panics become canned messages, never escape.
func (s *AskService) answer(ctx context.Context, question string, rc requestConfig, logger *zap.Logger) (msg *slack.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while answering", zap.Any("panic", r))
			msg = genericErrorMessage()
		}
	}()

	logger.Info("Fetching documentation")
	urls := docs.MapQuestion(question, rc.docsBaseURL)
	content, found := s.fetcher.Fetch(ctx, urls)
	if !found {
		logger.Info("No documentation content retrieved", zap.Strings("urls", urls))
		return slack.NewMessage(
			slack.BotHeader+"\n\nI couldn't find relevant documentation for your question. Could you try rephrasing it?",
			"Try asking about deployment, configuration, or development topics.",
			rc.docsBaseURL,
		)
	}

	logger.Info("Requesting completion")
	completer := s.newCompleter(llm.Options{
		BaseURL:     s.cfg.LLM.BaseURL,
		APIKey:      rc.apiKey,
		Model:       s.cfg.LLM.Model,
		MaxTokens:   s.cfg.LLM.MaxTokens,
		Timeout:     time.Duration(s.cfg.LLM.Timeout) * time.Second,
		DocsName:    rc.docsName,
		DocsBaseURL: rc.docsBaseURL,
	})
	raw, err := completer.Complete(ctx, question, content)
	if err != nil {
		logger.Error("Completion failed", zap.Error(err))
		return providerErrorMessage(err)
	}

	return slack.ParseCompletion(raw, rc.docsBaseURL)
}

// providerErrorMessage maps a completion failure onto a friendly terminal
// message with no internal detail.
func providerErrorMessage(err error) *slack.Message {
	switch {
	case errors.Is(err, domain.ErrProviderAuth):
		return slack.NewMessage(
			slack.BotHeader+"\n\n❌ The AI service rejected my credentials.",
			"Ask your workspace admin to check the configured API key.",
			"",
		)
	case errors.Is(err, domain.ErrProviderRateLimited):
		return slack.NewMessage(
			slack.BotHeader+"\n\n⏳ The AI service is handling too many requests right now.",
			"Please try again in a few moments.",
			"",
		)
	case errors.Is(err, domain.ErrProviderCredit):
		return slack.NewMessage(
			slack.BotHeader+"\n\n❌ The AI service account has run out of credits.",
			"Ask your workspace admin to top up the provider account.",
			"",
		)
	default:
		return genericErrorMessage()
	}
}

func genericErrorMessage() *slack.Message {
	return slack.NewMessage(
		slack.BotHeader+"\n\n❌ Oops! I encountered an error processing your question.",
		"This might be a temporary issue. Please try again in a moment.",
		"",
	)
}
