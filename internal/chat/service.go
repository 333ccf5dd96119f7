package chat

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lukiod/spur-assignment/internal/ai"
)

// historyLimit bounds how much of the conversation is fed back into prompts.
const historyLimit = 10

type service struct {
	store   Store
	replier Replier
}

func NewService(store Store, replier Replier) Service {
	return &service{
		store:   store,
		replier: replier,
	}
}

// HandleMessage runs one inbound customer message end to end, from
// conversation resolution through reply generation to persistence of both
// sides of the exchange. Store failures abort with an error; reply
// generation cannot fail, at worst the replier degrades internally.
func (s *service) HandleMessage(ctx context.Context, conversationID *int64, text string) (string, int64, error) {
	var convID int64
	if conversationID != nil {
		convID = *conversationID
	} else {
		id, err := s.store.CreateConversation(ctx)
		if err != nil {
			return "", 0, fmt.Errorf("create conversation: %w", err)
		}
		convID = id
	}

	// Context is captured before the new message is stored so the prompt
	// does not carry it twice.
	history, err := s.store.RecentMessages(ctx, convID, historyLimit)
	if err != nil {
		return "", 0, fmt.Errorf("load history: %w", err)
	}
	faqs, err := s.store.FAQs(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("load faqs: %w", err)
	}

	if _, err := s.store.AppendMessage(ctx, convID, SenderUser, text); err != nil {
		return "", 0, fmt.Errorf("store user message: %w", err)
	}

	outcome := s.replier.Reply(ctx, ai.ReplyRequest{
		ConversationID: convID,
		UserMessage:    text,
		History:        toTurns(history),
		FAQs:           toFAQs(faqs),
	})
	if outcome.Degraded {
		log.WithFields(log.Fields{
			"request_id":      RequestID(ctx),
			"conversation_id": convID,
			"reason":          outcome.Reason,
		}).Info("serving degraded reply")
	}

	if _, err := s.store.AppendMessage(ctx, convID, SenderAI, outcome.Text); err != nil {
		return "", 0, fmt.Errorf("store ai message: %w", err)
	}

	return outcome.Text, convID, nil
}

func (s *service) History(ctx context.Context, conversationID int64) ([]Message, error) {
	ok, err := s.store.ConversationExists(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("check conversation: %w", err)
	}
	if !ok {
		return nil, ErrConversationNotFound
	}

	msgs, err := s.store.RecentMessages(ctx, conversationID, 0)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return msgs, nil
}

func (s *service) ListFAQs(ctx context.Context) ([]FAQ, error) {
	faqs, err := s.store.FAQs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load faqs: %w", err)
	}
	return faqs, nil
}

// toTurns maps stored messages onto prompt turns. Anything not written by the
// customer speaks as the agent.
func toTurns(msgs []Message) []ai.Turn {
	turns := make([]ai.Turn, 0, len(msgs))
	for _, m := range msgs {
		role := ai.RoleUser
		if m.Sender != SenderUser {
			role = ai.RoleAgent
		}
		turns = append(turns, ai.Turn{Role: role, Text: m.Text})
	}
	return turns
}

func toFAQs(faqs []FAQ) []ai.FAQ {
	out := make([]ai.FAQ, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, ai.FAQ{Question: f.Question, Answer: f.Answer})
	}
	return out
}
