package domain

// AskRequest is a single inbound question.
//
// Slack slash commands deliver user_id, text and response_url as form fields;
// the JSON API additionally accepts per-request configuration overrides.
type AskRequest struct {
	UserID      string    `json:"user_id,omitempty" form:"user_id"`
	Text        string    `json:"text" form:"text"`
	ResponseURL string    `json:"response_url,omitempty" form:"response_url"`
	Overrides   Overrides `json:"overrides,omitempty"`
}

// Overrides carries request-scoped configuration. Empty fields fall back to
// the server configuration; overrides are merged into a copy so concurrent
// requests never see each other's values.
type Overrides struct {
	APIKey      string `json:"api_key,omitempty"`
	DocsBaseURL string `json:"docs_base_url,omitempty"`
	DocsName    string `json:"docs_name,omitempty"`
}

// AnonymousUser is the rate-limit identity used when no user ID was supplied.
const AnonymousUser = "anonymous"

// Identity returns the rate-limit identity for the request.
func (r *AskRequest) Identity() string {
	if r.UserID == "" {
		return AnonymousUser
	}
	return r.UserID
}
