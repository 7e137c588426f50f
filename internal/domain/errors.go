package domain

import "errors"

var (
	// ErrRateLimited indicates the caller exceeded its request window
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrInvalidInput indicates the question failed validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoDocumentation indicates no documentation content could be retrieved
	ErrNoDocumentation = errors.New("no documentation found")
	// ErrProviderAuth indicates a missing or rejected completion credential
	ErrProviderAuth = errors.New("completion provider authentication failed")
	// ErrProviderRateLimited indicates the completion provider is throttling
	ErrProviderRateLimited = errors.New("completion provider rate limited")
	// ErrProviderCredit indicates the completion provider account is out of credits
	ErrProviderCredit = errors.New("completion provider credits exhausted")
	// ErrProviderUnavailable indicates any other completion provider failure
	ErrProviderUnavailable = errors.New("completion provider unavailable")
)
