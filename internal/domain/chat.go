package domain

import "time"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatTurn is one append-only entry in a user's history. Timestamps are
// non-decreasing within a user's history; the pipeline is the single
// writer for a given user.
type ChatTurn struct {
	Role      ChatRole
	Content   string
	Timestamp time.Time
}

type ChatResponse struct {
	Response    string
	Timestamp   time.Time
	SourcesUsed []string
}

// ProviderResult is the outcome of one generation attempt. It is
// consumed and discarded within the orchestration call.
type ProviderResult struct {
	Text       string
	ProviderID string
	Complete   bool
}
