// Package docs maps questions to documentation pages and retrieves their
// readable text under per-page and aggregate size budgets.
package docs

import (
	"regexp"
	"strings"
)

// MaxURLs caps how many pages a single question may fetch
const MaxURLs = 3

// category pairs a whole-word topic pattern with the doc paths it covers,
// relative to the configured documentation base URL. Earlier categories take
// retrieval priority when the URL cap is reached.
type category struct {
	name    string
	pattern *regexp.Regexp
	paths   []string
}

const guidesBase = "guides/app_builder_guides/"

var categories = []category{
	{
		name:    "deployment",
		pattern: regexp.MustCompile(`(?i)\b(deploy|deployment|undeploy|ci/?cd|pipeline|credential|rotation|rotate|github|cicd)\b`),
		paths: []string{
			guidesBase + "deployment/deployment",
			guidesBase + "deployment/ci_cd",
			guidesBase + "deployment/credential-rotation",
		},
	},
	{
		name:    "configuration",
		pattern: regexp.MustCompile(`(?i)\b(config|configuration|app\.config|manifest|\.env|environment|variable|hook)\b`),
		paths: []string{
			guidesBase + "configuration/configuration",
			guidesBase + "configuration/app-hooks",
		},
	},
	{
		name:    "storage",
		pattern: regexp.MustCompile(`(?i)\b(database|storage|db|mongodb|persist|state|key-value|aio-lib-db|collection|document)\b`),
		paths: []string{
			guidesBase + "storage",
			guidesBase + "storage/database",
		},
	},
	{
		name:    "logging",
		pattern: regexp.MustCompile(`(?i)\b(log|logging|debug|monitor|troubleshoot|trace)\b`),
		paths:   []string{guidesBase + "application_logging"},
	},
	{
		name:    "events",
		pattern: regexp.MustCompile(`(?i)\b(event|webhook|trigger|adobe\s+i/o\s+event)\b`),
		paths:   []string{"guides/events/"},
	},
	{
		name:    "security",
		pattern: regexp.MustCompile(`(?i)\b(security|secure|auth|authentication|credential|token|ims|oauth)\b`),
		paths: []string{
			"guides/security/",
			"guides/security/authentication/",
		},
	},
	{
		name:    "runtime",
		pattern: regexp.MustCompile(`(?i)\b(action|function|runtime|invoke|serverless|limit|timeout|memory)\b`),
		paths: []string{
			"guides/actions/",
			"guides/runtime/",
		},
	},
	{
		name:    "extensions",
		pattern: regexp.MustCompile(`(?i)\b(extension|excshell|experience\s+cloud|spa)\b`),
		paths:   []string{"guides/extensions/"},
	},
	{
		name:    "overview",
		pattern: regexp.MustCompile(`(?i)\b(what\s+is|overview|introduction|start|begin|getting\s+started|first\s+app)\b`),
		paths:   []string{"overview/", "getting_started/"},
	},
}

// DefaultPath is fetched when no category matches the question
const DefaultPath = "guides/"

// MapQuestion returns the documentation URLs to fetch for a question: every
// matching category contributes its pages, duplicates are dropped keeping
// first-seen order, and the result is capped at MaxURLs.
func MapQuestion(question, baseURL string) []string {
	var urls []string
	for _, c := range categories {
		if c.pattern.MatchString(question) {
			for _, p := range c.paths {
				urls = append(urls, joinURL(baseURL, p))
			}
		}
	}

	if len(urls) == 0 {
		return []string{joinURL(baseURL, DefaultPath)}
	}

	seen := make(map[string]bool, len(urls))
	unique := urls[:0]
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			unique = append(unique, u)
		}
	}

	if len(unique) > MaxURLs {
		unique = unique[:MaxURLs]
	}
	return unique
}

func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + path
}
