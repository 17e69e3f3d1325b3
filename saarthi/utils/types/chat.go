// saarthi/utils/types/chat.go
package types

// LLMQueryRequest is the session-aware chat request. Context may be a bare
// session id string or a NavigationContext object.
type LLMQueryRequest struct {
	Query    string             `json:"query"`
	Context  *NavigationContext `json:"context,omitempty"`
	Location *Location          `json:"location,omitempty"`
}

type LLMQueryResponse struct {
	Reply     string         `json:"response"`
	Status    string         `json:"status"`
	SessionID string         `json:"session_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NavigationQueryRequest is the stateless query request; RuleBased skips generation.
type NavigationQueryRequest struct {
	Query     string             `json:"query"`
	Location  *Location          `json:"location,omitempty"`
	Context   *NavigationContext `json:"context,omitempty"`
	RuleBased bool               `json:"rule_based,omitempty"`
}

type NavigationQueryResponse struct {
	Category      string         `json:"query_type"`
	Reply         string         `json:"response"`
	OriginalQuery string         `json:"original_query,omitempty"`
	Slots         map[string]any `json:"slots,omitempty"`
}

type WakeWordRequest struct {
	Text string `json:"text"`
}

type WakeWordResponse struct {
	Detected      bool    `json:"detected"`
	Confidence    float64 `json:"confidence"`
	Text          string  `json:"text"`
	WakeWordFound *string `json:"wake_word_found"`
}

// For session/thread summary in the archive listing
// LastActivity: RFC3339 string
type ChatSessionSummary struct {
	SessionID       string `json:"session_id"`
	LastMessage     string `json:"last_message"`
	LastMessageRole string `json:"last_message_role"`
	LastActivity    string `json:"last_activity"`
	Turns           int    `json:"turns"`
}

// SessionMessage is one turn as exposed by the session routes.
type SessionMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
