// Package assistant orchestrates a chat turn: it gathers the travel
// context, classifies the query, renders the context into a system prompt,
// and calls the chat provider.
package assistant

import (
	"context"
	"log/slog"

	"github.com/yatralabs/yatra-server/internal/classify"
	"github.com/yatralabs/yatra-server/internal/domain"
	"github.com/yatralabs/yatra-server/internal/travelctx"
)

// FallbackReply is returned when the chat provider is unavailable. It is
// deliberately labeled as a fallback; a raw provider error never reaches the
// end user.
const FallbackReply = "The travel assistant is temporarily unavailable. " +
	"Please try again in a moment - your question was not lost."

// Completer is the chat-provider contract the assistant consumes.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// ContextSource supplies the per-request travel context.
type ContextSource interface {
	Gather(ctx context.Context, hints travelctx.Hints) *domain.TravelContext
}

// ChatRequest is one user turn plus the session state the caller owns.
type ChatRequest struct {
	Message  string             `json:"message"`
	Location *domain.Coordinate `json:"location,omitempty"`
	City     string             `json:"city,omitempty"`
	History  []domain.Message   `json:"history,omitempty"`
}

// ContextUsed reports which context fields were populated for the turn.
type ContextUsed struct {
	Weather  bool `json:"weather"`
	Location bool `json:"location"`
	Places   bool `json:"places"`
	History  bool `json:"history"`
}

// ChatResponse is the assistant's answer for one turn.
type ChatResponse struct {
	Reply        string       `json:"reply"`
	Topic        domain.Topic `json:"topic"`
	Fallback     bool         `json:"fallback"`
	ContextUsed  ContextUsed  `json:"context_used"`
	SoftFailures int          `json:"soft_failures"`
}

// Service answers chat turns.
type Service struct {
	contexts  ContextSource
	completer Completer
}

// New creates an assistant service.
func New(contexts ContextSource, completer Completer) *Service {
	return &Service{contexts: contexts, completer: completer}
}

// Chat handles one turn. It never returns a provider error: when the chat
// provider fails the response carries the labeled fallback reply instead.
func (s *Service) Chat(ctx context.Context, req ChatRequest) *ChatResponse {
	tc := s.contexts.Gather(ctx, travelctx.Hints{
		Location: req.Location,
		City:     req.City,
		History:  req.History,
	})

	topic := classify.Classify(req.Message)
	resp := &ChatResponse{
		Topic: topic,
		ContextUsed: ContextUsed{
			Weather:  tc.Weather != nil,
			Location: tc.Location != nil,
			Places:   len(tc.NearbyPlaces) > 0,
			History:  len(tc.History) > 0,
		},
		SoftFailures: tc.SoftFailures,
	}

	reply, err := s.completer.Complete(ctx, renderSystemPrompt(tc, topic), req.Message)
	if err != nil {
		slog.Warn("chat provider failed, serving fallback", "topic", topic, "error", err)
		resp.Reply = FallbackReply
		resp.Fallback = true
		return resp
	}
	resp.Reply = reply
	return resp
}
