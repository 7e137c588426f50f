// Package slack builds Block Kit messages: one section block for the answer,
// optional context blocks for a pro tip and a documentation link.
package slack

import (
	"regexp"
	"strings"
)

// BotHeader prefixes every direct bot message
const BotHeader = "🤖 *DocuBot*"

// Message is the response envelope posted inline or to a response_url
type Message struct {
	ResponseType string  `json:"response_type"`
	Text         string  `json:"text,omitempty"`
	Blocks       []Block `json:"blocks,omitempty"`
}

// Block is a single Block Kit element
type Block struct {
	Type     string       `json:"type"`
	Text     *TextObject  `json:"text,omitempty"`
	Elements []TextObject `json:"elements,omitempty"`
}

// TextObject is a mrkdwn text fragment
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

var (
	tipRe  = regexp.MustCompile(`💡[^\n]*?[Pp]ro [Tt]ip:?\*?:?[^\S\n]*([^\n]+)`)
	linkRe = regexp.MustCompile(`📖[^\n]*?<?(https?://[^\s>|]+)>?[^\n]*`)
)

// NewMessage builds a block message from already-separated fields. The
// answer section is always present; tip and link context blocks appear only
// when their data exists, tip first.
func NewMessage(answer, proTip, learnMoreURL string) *Message {
	blocks := []Block{
		{
			Type: "section",
			Text: &TextObject{Type: "mrkdwn", Text: answer},
		},
	}

	if proTip != "" {
		blocks = append(blocks, Block{
			Type: "context",
			Elements: []TextObject{
				{Type: "mrkdwn", Text: "💡 *Pro tip:* " + proTip},
			},
		})
	}

	if learnMoreURL != "" {
		blocks = append(blocks, Block{
			Type: "context",
			Elements: []TextObject{
				{Type: "mrkdwn", Text: "📖 <" + learnMoreURL + "|Learn more>"},
			},
		})
	}

	return &Message{ResponseType: "in_channel", Blocks: blocks}
}

// Ack builds the lightweight acknowledgment sent inside the slash-command
// window while the real answer is still being produced.
func Ack(text string) *Message {
	return &Message{ResponseType: "in_channel", Text: text}
}

// ParseCompletion turns raw completion text into a block message. An embedded
// pro-tip line and source link are lifted into their own context blocks and
// removed from the body; defaultURL is linked when the text carries no URL of
// its own.
func ParseCompletion(raw, defaultURL string) *Message {
	proTip := ""
	if m := tipRe.FindStringSubmatch(raw); m != nil {
		proTip = strings.Trim(m[1], "* ")
	}

	learnMoreURL := defaultURL
	if m := linkRe.FindStringSubmatch(raw); m != nil {
		learnMoreURL = m[1]
	}

	body := tipRe.ReplaceAllString(raw, "")
	body = linkRe.ReplaceAllString(body, "")
	body = strings.TrimSpace(body)

	return NewMessage(body, proTip, learnMoreURL)
}
