package ai

import "context"

// Invoker — one upstream model call; knows nothing about conversations or the DB.
// Implementations wrap a vendor SDK, the router only sees this interface.
type Invoker interface {
	Invoke(ctx context.Context, model string, prompt string) (string, error)
}

// Turn roles as they appear in prompts.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Turn — one prior exchange line, oldest first.
type Turn struct {
	Role string // "user" | "agent"
	Text string
}

// FAQ — one knowledge-base entry.
type FAQ struct {
	Question string
	Answer   string
}

// ReplyRequest carries everything needed to produce one reply.
// Assembled per call, never persisted.
type ReplyRequest struct {
	ConversationID int64
	UserMessage    string
	History        []Turn // chronological, already bounded by the caller
	FAQs           []FAQ
}

// ReplyOutcome is the result of a reply attempt. A degraded outcome still
// carries usable text from the deterministic responder.
type ReplyOutcome struct {
	Text      string
	ModelUsed string // empty when degraded
	Degraded  bool
	Reason    string // set when degraded
}
