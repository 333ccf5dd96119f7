package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukiod/spur-assignment/internal/ai"
)

// fakeStore keeps everything in maps and records appends in order.
type fakeStore struct {
	nextConvID int64
	createErr  error
	history    map[int64][]Message
	appendErr  error
	existing   map[int64]bool
	faqs       []FAQ
	faqErr     error

	appended []Message
}

func (f *fakeStore) CreateConversation(context.Context) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.nextConvID, nil
}

func (f *fakeStore) AppendMessage(_ context.Context, conversationID int64, sender Sender, text string) (int64, error) {
	if f.appendErr != nil {
		return 0, f.appendErr
	}
	f.appended = append(f.appended, Message{ConversationID: conversationID, Sender: sender, Text: text})
	return int64(len(f.appended)), nil
}

func (f *fakeStore) RecentMessages(_ context.Context, conversationID int64, _ int) ([]Message, error) {
	return f.history[conversationID], nil
}

func (f *fakeStore) ConversationExists(_ context.Context, conversationID int64) (bool, error) {
	return f.existing[conversationID], nil
}

func (f *fakeStore) FAQs(context.Context) ([]FAQ, error) {
	return f.faqs, f.faqErr
}

// fakeReplier hands back a fixed outcome and keeps the request it saw.
type fakeReplier struct {
	outcome ai.ReplyOutcome
	got     ai.ReplyRequest
}

func (f *fakeReplier) Reply(_ context.Context, req ai.ReplyRequest) ai.ReplyOutcome {
	f.got = req
	return f.outcome
}

func TestHandleMessageCreatesConversation(t *testing.T) {
	store := &fakeStore{nextConvID: 42}
	rep := &fakeReplier{outcome: ai.ReplyOutcome{Text: "Hello!", ModelUsed: "gpt-4o-mini"}}
	svc := NewService(store, rep)

	reply, convID, err := svc.HandleMessage(context.Background(), nil, "hi there")

	require.NoError(t, err)
	assert.Equal(t, int64(42), convID)
	assert.Equal(t, "Hello!", reply)

	// User message first, AI reply second, both in the new conversation.
	require.Len(t, store.appended, 2)
	assert.Equal(t, SenderUser, store.appended[0].Sender)
	assert.Equal(t, "hi there", store.appended[0].Text)
	assert.Equal(t, SenderAI, store.appended[1].Sender)
	assert.Equal(t, "Hello!", store.appended[1].Text)
	assert.Equal(t, int64(42), store.appended[0].ConversationID)
}

func TestHandleMessageReusesConversation(t *testing.T) {
	store := &fakeStore{nextConvID: 99}
	rep := &fakeReplier{outcome: ai.ReplyOutcome{Text: "again", ModelUsed: "gpt-4o-mini"}}
	svc := NewService(store, rep)

	seven := int64(7)
	_, convID, err := svc.HandleMessage(context.Background(), &seven, "hello again")

	require.NoError(t, err)
	assert.Equal(t, int64(7), convID)
	assert.Equal(t, int64(7), rep.got.ConversationID)
}

func TestHandleMessageBuildsReplyRequest(t *testing.T) {
	store := &fakeStore{
		history: map[int64][]Message{
			7: {
				{Sender: SenderUser, Text: "hi"},
				{Sender: SenderAI, Text: "hello, how can I help?"},
			},
		},
		faqs: []FAQ{{ID: 1, Question: "Q1?", Answer: "A1"}},
	}
	rep := &fakeReplier{outcome: ai.ReplyOutcome{Text: "sure", ModelUsed: "gpt-4o-mini"}}
	svc := NewService(store, rep)

	seven := int64(7)
	_, _, err := svc.HandleMessage(context.Background(), &seven, "where is my order?")

	require.NoError(t, err)
	assert.Equal(t, "where is my order?", rep.got.UserMessage)

	require.Len(t, rep.got.History, 2)
	assert.Equal(t, ai.RoleUser, rep.got.History[0].Role)
	assert.Equal(t, ai.RoleAgent, rep.got.History[1].Role)

	// The message being handled is not part of the history it sees.
	for _, turn := range rep.got.History {
		assert.NotEqual(t, "where is my order?", turn.Text)
	}

	require.Len(t, rep.got.FAQs, 1)
	assert.Equal(t, "Q1?", rep.got.FAQs[0].Question)
	assert.Equal(t, "A1", rep.got.FAQs[0].Answer)
}

func TestHandleMessageStoresDegradedReply(t *testing.T) {
	store := &fakeStore{nextConvID: 1}
	rep := &fakeReplier{outcome: ai.ReplyOutcome{Text: "fallback text", Degraded: true, Reason: "all models exhausted"}}
	svc := NewService(store, rep)

	reply, _, err := svc.HandleMessage(context.Background(), nil, "hi")

	require.NoError(t, err)
	assert.Equal(t, "fallback text", reply)
	require.Len(t, store.appended, 2)
	assert.Equal(t, "fallback text", store.appended[1].Text)
}

func TestHandleMessageCreateFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("pq: down")}
	svc := NewService(store, &fakeReplier{})

	_, _, err := svc.HandleMessage(context.Background(), nil, "hi")

	require.Error(t, err)
	assert.Empty(t, store.appended)
}

func TestHandleMessageAppendFailure(t *testing.T) {
	store := &fakeStore{nextConvID: 1, appendErr: errors.New("pq: down")}
	svc := NewService(store, &fakeReplier{})

	_, _, err := svc.HandleMessage(context.Background(), nil, "hi")

	require.Error(t, err)
}

func TestHistoryUnknownConversation(t *testing.T) {
	store := &fakeStore{existing: map[int64]bool{}}
	svc := NewService(store, &fakeReplier{})

	_, err := svc.History(context.Background(), 999)

	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestHistoryKnownConversation(t *testing.T) {
	store := &fakeStore{
		existing: map[int64]bool{5: true},
		history: map[int64][]Message{
			5: {{Sender: SenderUser, Text: "hi"}},
		},
	}
	svc := NewService(store, &fakeReplier{})

	msgs, err := svc.History(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Text)
}

func TestListFAQs(t *testing.T) {
	store := &fakeStore{faqs: []FAQ{{ID: 1, Question: "Q?", Answer: "A"}}}
	svc := NewService(store, &fakeReplier{})

	faqs, err := svc.ListFAQs(context.Background())

	require.NoError(t, err)
	require.Len(t, faqs, 1)
}
