package slack

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNoResponseURL indicates a deferred delivery with no destination
var ErrNoResponseURL = errors.New("no response_url provided")

// Webhook posts deferred messages to a caller-supplied response_url. The
// original caller has already disconnected by then, so failures are for the
// caller of Deliver to log, never to retry or surface.
type Webhook struct {
	http *resty.Client
}

// NewWebhook creates a deferred delivery client
func NewWebhook(timeout time.Duration) *Webhook {
	return &Webhook{
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// Deliver posts the message to responseURL as JSON
func (w *Webhook) Deliver(ctx context.Context, responseURL string, msg *Message) error {
	if responseURL == "" {
		return ErrNoResponseURL
	}

	resp, err := w.http.R().
		SetContext(ctx).
		SetBody(msg).
		Post(responseURL)
	if err != nil {
		return fmt.Errorf("deferred delivery failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("deferred delivery returned HTTP %d", resp.StatusCode())
	}
	return nil
}
