package security

import "regexp"

// Patterns for credentials that must never reach a log line.
var sensitivePatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`), "sk-ant-***MASKED***"},
	{regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`), "sk-***MASKED***"},
	{regexp.MustCompile(`gsk_[a-zA-Z0-9]{20,}`), "gsk_***MASKED***"},
	{regexp.MustCompile(`xoxb-[a-zA-Z0-9-]+`), "xoxb-***MASKED***"},
	{regexp.MustCompile(`(?i)Bearer\s+[a-zA-Z0-9-_.]+`), "Bearer ***MASKED***"},
	{regexp.MustCompile(`(?i)Authorization:\s*Basic\s+[a-zA-Z0-9+/=]+`), "Authorization: Basic ***MASKED***"},
}

// MaskSensitive redacts API keys, bearer tokens and basic-auth values from
// text before it is logged.
func MaskSensitive(text string) string {
	for _, p := range sensitivePatterns {
		text = p.re.ReplaceAllString(text, p.replacement)
	}
	return text
}

// MaskValue redacts a whole configured secret, keeping only the first and
// last four characters of longer values so operators can still tell keys apart.
func MaskValue(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 8 {
		return "***MASKED***"
	}
	return value[:4] + "***MASKED***" + value[len(value)-4:]
}
