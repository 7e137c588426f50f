// Package llm invokes the completion provider over its OpenAI-compatible
// chat completions API.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/docubot/docubot/internal/domain"
)

// Options configures a completion client
type Options struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration

	// DocsName and DocsBaseURL shape the assistant persona and the prompt's
	// citation instructions.
	DocsName    string
	DocsBaseURL string
}

// Client calls the completion provider. One attempt per request; retry
// policy, if any, belongs to the caller.
type Client struct {
	http *resty.Client
	opts Options
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a completion client
func NewClient(opts Options) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/")).
			SetTimeout(opts.Timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		opts: opts,
	}
}

// Complete sends the question and documentation excerpt to the provider and
// returns the raw completion text. Provider failures map onto the domain
// error taxonomy by HTTP status.
func (c *Client) Complete(ctx context.Context, question, docContent string) (string, error) {
	if c.opts.APIKey == "" {
		return "", fmt.Errorf("no API key configured: %w", domain.ErrProviderAuth)
	}

	var out chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.opts.APIKey).
		SetBody(chatRequest{
			Model:     c.opts.Model,
			MaxTokens: c.opts.MaxTokens,
			Messages: []chatMessage{
				{Role: "system", Content: c.systemPrompt()},
				{Role: "user", Content: c.userPrompt(question, docContent)},
			},
		}).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", domain.ErrProviderUnavailable)
	}

	if resp.IsError() {
		return "", c.statusError(resp.StatusCode(), &out)
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty completion: %w", domain.ErrProviderUnavailable)
	}
	return out.Choices[0].Message.Content, nil
}

// statusError maps a provider failure status onto the error taxonomy
func (c *Client) statusError(status int, body *chatResponse) error {
	detail := ""
	if body != nil && body.Error != nil {
		detail = body.Error.Message
	}

	switch {
	case status == 401 || status == 403:
		return fmt.Errorf("provider rejected credential: %w", domain.ErrProviderAuth)
	case status == 429:
		return fmt.Errorf("provider throttled request: %w", domain.ErrProviderRateLimited)
	case status == 400 && isCreditError(detail):
		return fmt.Errorf("provider reports exhausted credits: %w", domain.ErrProviderCredit)
	default:
		return fmt.Errorf("provider returned HTTP %d: %w", status, domain.ErrProviderUnavailable)
	}
}

func isCreditError(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "credit") ||
		strings.Contains(m, "quota") ||
		strings.Contains(m, "billing")
}

func (c *Client) systemPrompt() string {
	return fmt.Sprintf(`You are DocuBot, a friendly AI assistant for developers.

You specialize in %[1]s documentation.

Your job is to help developers by answering questions about %[1]s clearly and concisely.

Guidelines:
- Be friendly and helpful (like a coworker)
- Use emoji sparingly (1-2 per response max)
- Include code examples when relevant
- Keep answers concise (2-4 paragraphs)
- Add a "Pro tip" with practical advice when applicable
- Always cite the source URL when available
- Mention "%[1]s" in your response so users know the source
- Format responses in Slack mrkdwn (markdown)
- Use *bold* for emphasis, `+"`code`"+` for commands, `+"```"+` for code blocks

If you don't know the answer from the provided docs, say so honestly and suggest where to look.`,
		c.opts.DocsName)
}

func (c *Client) userPrompt(question, docContent string) string {
	return fmt.Sprintf(`Based on this documentation from %s:

%s

Answer this question: %s

Format your response for Slack:
- Start with 🤖 *DocuBot*
- Use *bold* for emphasis
- Use `+"`code`"+` for commands
- Use `+"```"+` for code blocks
- Mention %s naturally in your answer
- Include a practical pro tip if relevant
- End with a source URL if you have one`,
		c.opts.DocsBaseURL, docContent, question, c.opts.DocsName)
}
