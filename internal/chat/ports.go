package chat

import (
	"context"
	"errors"
	"time"

	"github.com/lukiod/spur-assignment/internal/ai"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"-"`
	Sender         Sender    `json:"sender"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"timestamp"`
}

type FAQ struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ErrConversationNotFound — lookup of a conversation id nobody created.
var ErrConversationNotFound = errors.New("conversation not found")

// Store — persistence
type Store interface {
	CreateConversation(ctx context.Context) (int64, error)
	AppendMessage(ctx context.Context, conversationID int64, sender Sender, text string) (int64, error)
	// RecentMessages returns up to limit most recent messages in chronological
	// order. limit <= 0 returns the whole conversation.
	RecentMessages(ctx context.Context, conversationID int64, limit int) ([]Message, error)
	ConversationExists(ctx context.Context, conversationID int64) (bool, error)
	FAQs(ctx context.Context) ([]FAQ, error)
}

// Replier — reply generation; satisfied by ai.Router.
type Replier interface {
	Reply(ctx context.Context, req ai.ReplyRequest) ai.ReplyOutcome
}

// Service — orchestration
type Service interface {
	HandleMessage(ctx context.Context, conversationID *int64, text string) (reply string, convID int64, err error)
	History(ctx context.Context, conversationID int64) ([]Message, error)
	ListFAQs(ctx context.Context) ([]FAQ, error)
}
