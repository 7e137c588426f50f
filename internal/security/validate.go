package security

import "strings"

// MaxQuestionLength is the longest accepted question
const MaxQuestionLength = 500

// sanitizer strips characters that downstream formatting could reinterpret
// as markup or interpolation syntax. Backticks become plain quotes so code
// references stay readable.
var sanitizer = strings.NewReplacer(
	"<", "",
	">", "",
	"$", "",
	"{", "",
	"}", "",
	"`", "'",
	"\\", "",
)

// ValidationResult is the outcome of validating user input
type ValidationResult struct {
	Valid     bool
	Sanitized string
	Err       string
}

// Validate checks and sanitizes a user question
func Validate(text string) ValidationResult {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return ValidationResult{Err: "Question cannot be empty"}
	}

	if len(trimmed) > MaxQuestionLength {
		return ValidationResult{Err: "Question is too long (max 500 characters)"}
	}

	return ValidationResult{
		Valid:     true,
		Sanitized: strings.TrimSpace(sanitizer.Replace(trimmed)),
	}
}
