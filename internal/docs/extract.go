package docs

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Elements whose subtrees are navigation or boilerplate, never answer content.
var skipElements = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"header": true,
	"footer": true,
	"aside":  true,
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractText reduces an HTML page to its readable text. Script, style and
// navigational subtrees are skipped; block elements end with a newline so the
// result keeps some structure. A page that fails to parse is returned as-is.
func ExtractText(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return page
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}

		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "br":
				sb.WriteString("\n")
			}
		}
	}
	walk(doc)

	return CollapseWhitespace(sb.String())
}

// CollapseWhitespace squashes runs of whitespace into single spaces
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
