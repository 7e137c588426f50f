package slack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Run("Should always carry a section block first", func(t *testing.T) {
		msg := NewMessage("the answer", "", "")
		require.Len(t, msg.Blocks, 1)
		assert.Equal(t, "in_channel", msg.ResponseType)
		assert.Equal(t, "section", msg.Blocks[0].Type)
		assert.Equal(t, "the answer", msg.Blocks[0].Text.Text)
	})
	t.Run("Should order tip before link", func(t *testing.T) {
		msg := NewMessage("answer", "a tip", "https://example.com/docs")
		require.Len(t, msg.Blocks, 3)
		assert.Equal(t, "context", msg.Blocks[1].Type)
		assert.Contains(t, msg.Blocks[1].Elements[0].Text, "💡 *Pro tip:* a tip")
		assert.Contains(t, msg.Blocks[2].Elements[0].Text, "<https://example.com/docs|Learn more>")
	})
	t.Run("Should omit annotation blocks without data", func(t *testing.T) {
		msg := NewMessage("answer", "", "https://example.com")
		require.Len(t, msg.Blocks, 2)
		assert.Contains(t, msg.Blocks[1].Elements[0].Text, "Learn more")
	})
}

func TestAck(t *testing.T) {
	msg := Ack("🤖 *DocuBot is thinking...* 🔍")
	assert.Equal(t, "in_channel", msg.ResponseType)
	assert.Equal(t, "🤖 *DocuBot is thinking...* 🔍", msg.Text)
	assert.Empty(t, msg.Blocks)
}

func TestParseCompletion(t *testing.T) {
	t.Run("Should lift tip and link into annotation blocks", func(t *testing.T) {
		raw := "🤖 *DocuBot*\nDeploy with 'aio app deploy'.\n" +
			"💡 *Pro tip:* Use CI/CD for production.\n" +
			"📖 <https://example.com/deploy|Learn more>"

		msg := ParseCompletion(raw, "https://default.example.com/")
		require.Len(t, msg.Blocks, 3)

		body := msg.Blocks[0].Text.Text
		assert.Contains(t, body, "Deploy with 'aio app deploy'.")
		assert.NotContains(t, body, "Pro tip")
		assert.NotContains(t, body, "example.com/deploy")

		assert.Contains(t, msg.Blocks[1].Elements[0].Text, "Use CI/CD for production.")
		assert.Contains(t, msg.Blocks[2].Elements[0].Text, "https://example.com/deploy")
		assert.NotContains(t, msg.Blocks[2].Elements[0].Text, "default.example.com")
	})
	t.Run("Should fall back to the default URL when no link is embedded", func(t *testing.T) {
		msg := ParseCompletion("Just an answer.", "https://default.example.com/")
		require.Len(t, msg.Blocks, 2)
		assert.Contains(t, msg.Blocks[1].Elements[0].Text, "https://default.example.com/")
	})
	t.Run("Should handle bare URLs without Slack brackets", func(t *testing.T) {
		msg := ParseCompletion("Answer.\n📖 Source: https://example.com/page", "https://default.example.com/")
		require.Len(t, msg.Blocks, 2)
		assert.Contains(t, msg.Blocks[1].Elements[0].Text, "https://example.com/page")
	})
	t.Run("Should trim the body after stripping annotations", func(t *testing.T) {
		msg := ParseCompletion("Answer.\n\n💡 Pro tip: short one\n", "")
		assert.Equal(t, "Answer.", msg.Blocks[0].Text.Text)
	})
}
