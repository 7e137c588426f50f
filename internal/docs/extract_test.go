package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	t.Run("Should keep body text and drop navigation and scripts", func(t *testing.T) {
		page := `<html><head><style>.x{}</style></head><body>
			<nav>Home | Guides | API</nav>
			<header>Site header</header>
			<main><h1>Deployment</h1><p>Run aio app deploy to deploy.</p></main>
			<script>track();</script>
			<footer>Copyright</footer>
		</body></html>`

		text := ExtractText(page)
		assert.Contains(t, text, "Deployment")
		assert.Contains(t, text, "Run aio app deploy to deploy.")
		assert.NotContains(t, text, "Home | Guides")
		assert.NotContains(t, text, "Site header")
		assert.NotContains(t, text, "track()")
		assert.NotContains(t, text, "Copyright")
	})
	t.Run("Should collapse runs of whitespace", func(t *testing.T) {
		text := ExtractText("<p>a \n\n  b</p>")
		assert.Equal(t, "a b", text)
	})
	t.Run("Should return unparseable input as-is", func(t *testing.T) {
		// html.Parse is lenient, so plain text simply passes through
		assert.Equal(t, "just text", ExtractText("just text"))
	})
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a\t b \n\n c "))
}
