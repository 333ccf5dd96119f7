// Package ai generates support replies. Prompts are built from the FAQ
// knowledge base and recent conversation history and routed across a
// prioritized list of upstream models with per-model cooldowns. When no
// model is usable the package answers deterministically instead of failing.
package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultInvokeTimeout bounds a single upstream invocation.
const DefaultInvokeTimeout = 30 * time.Second

// errUpstreamTimeout marks an invocation abandoned by the router's timer.
var errUpstreamTimeout = errors.New("upstream invocation timed out")

// errBlankReply marks a model answering with empty or whitespace-only text.
var errBlankReply = errors.New("upstream returned a blank reply")

// rateLimitMarkers are matched case-insensitively against upstream error text.
var rateLimitMarkers = []string{"rate limit", "quota", "429", "resource exhausted"}

// IsRateLimited reports whether an upstream error reads like rate limiting.
// Classification only affects logs and metrics; every failure cools the
// model down the same way.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// Router turns one ReplyRequest into one reply. It walks the model priority
// list in order and tries each model that is not cooling down at most once.
// When every model is exhausted, suppressed or unreachable it answers from
// the deterministic responder. It never fails: the worst outcome is a
// degraded reply.
type Router struct {
	models  []string // priority order, fixed at construction
	invoker Invoker
	tracker *Tracker
	gate    *Gate

	timeout time.Duration
	now     func() time.Time
}

// NewRouter wires a router. models is the trial order; a nil tracker or gate
// gets a fresh default.
func NewRouter(models []string, invoker Invoker, tracker *Tracker, gate *Gate) *Router {
	if tracker == nil {
		tracker = NewTracker(DefaultCooldown)
	}
	if gate == nil {
		gate = NewGate()
	}
	return &Router{
		models:  models,
		invoker: invoker,
		tracker: tracker,
		gate:    gate,
		timeout: DefaultInvokeTimeout,
		now:     time.Now,
	}
}

// Reply produces a reply for the request. Upstream failures are absorbed:
// they suppress the failing model for the cooldown window and the router
// moves straight to the next one. It never waits for a cooldown to expire.
func (r *Router) Reply(ctx context.Context, req ReplyRequest) ReplyOutcome {
	if r.gate.Current() == ModeDegradedOnly {
		return r.degraded(req, "no upstream credential configured", nil)
	}
	if len(r.models) == 0 {
		return r.degraded(req, "no models configured", nil)
	}

	prompt := BuildPrompt(req.FAQs, req.History, req.UserMessage)

	var lastErr error
	for _, model := range r.models {
		if !r.tracker.IsAvailable(model, r.now()) {
			suppressionsTotal.WithLabelValues(model).Inc()
			log.WithFields(log.Fields{
				"conversation_id": req.ConversationID,
				"model":           model,
			}).Debug("model cooling down, skipped")
			continue
		}

		invocationsTotal.WithLabelValues(model).Inc()
		text, err := r.invoke(ctx, model, prompt)
		if err == nil {
			repliesTotal.WithLabelValues("model").Inc()
			log.WithFields(log.Fields{
				"conversation_id": req.ConversationID,
				"model":           model,
			}).Info("reply generated")
			return ReplyOutcome{Text: text, ModelUsed: model}
		}

		reason := "error"
		switch {
		case errors.Is(err, errUpstreamTimeout):
			reason = "timeout"
		case errors.Is(err, errBlankReply):
			reason = "blank_reply"
		case IsRateLimited(err):
			reason = "rate_limit"
		}
		r.tracker.MarkUnavailable(model, r.now())
		failuresTotal.WithLabelValues(model, reason).Inc()
		lastErr = err
		log.WithFields(log.Fields{
			"conversation_id": req.ConversationID,
			"model":           model,
			"reason":          reason,
			"error":           err.Error(),
		}).Warn("model failed, trying next")
	}

	return r.degraded(req, "all models exhausted", lastErr)
}

// invoke races one model invocation against the router's timeout. On timeout
// the in-flight call is abandoned, not cancelled: its goroutine finishes on
// its own and the result is dropped into the buffered channel.
func (r *Router) invoke(ctx context.Context, model, prompt string) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		text, err := r.invoker.Invoke(ctx, model, prompt)
		ch <- result{text: text, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return "", res.err
		}
		if strings.TrimSpace(res.text) == "" {
			return "", errBlankReply
		}
		return res.text, nil
	case <-time.After(r.timeout):
		return "", errUpstreamTimeout
	}
}

func (r *Router) degraded(req ReplyRequest, reason string, lastErr error) ReplyOutcome {
	repliesTotal.WithLabelValues("fallback").Inc()
	fields := log.Fields{
		"conversation_id": req.ConversationID,
		"reason":          reason,
	}
	if lastErr != nil {
		fields["last_error"] = lastErr.Error()
	}
	log.WithFields(fields).Warn("answering from fallback responder")

	return ReplyOutcome{
		Text:     Respond(req.UserMessage, req.FAQs),
		Degraded: true,
		Reason:   reason,
	}
}
