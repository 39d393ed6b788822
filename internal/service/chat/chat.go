package chat

import (
	"context"
	"fmt"

	"github.com/Reon1917/AU-GURU/internal/classifier"
	"github.com/Reon1917/AU-GURU/internal/core"
	"github.com/Reon1917/AU-GURU/internal/prompt"
	"github.com/Reon1917/AU-GURU/pkg/log"
	"github.com/Reon1917/AU-GURU/pkg/retry"
)

// Answer is the outcome of one chat turn.
type Answer struct {
	SessionID     string          `json:"session_id"`
	Reply         string          `json:"reply"`
	Categories    []core.Category `json:"categories"`
	TokenEstimate int             `json:"token_estimate"`
}

type Service struct {
	ai          core.AIProvider
	store       core.SessionStore
	assembler   *prompt.Assembler
	transcripts core.TranscriptRepo // nil when journaling is disabled
	retrier     *retry.Retrier
}

func NewService(
	ai core.AIProvider,
	store core.SessionStore,
	assembler *prompt.Assembler,
	transcripts core.TranscriptRepo,
) *Service {
	return &Service{
		ai:          ai,
		store:       store,
		assembler:   assembler,
		transcripts: transcripts,
		retrier:     retry.NewDefaultRetrier(),
	}
}

// Ask runs one chat turn: classify the query, assemble the knowledge context,
// call the model with the session history, record the exchange.
func (s *Service) Ask(ctx context.Context, sessionID, query string) (Answer, error) {
	logger := log.FromCtx(ctx)

	sess := s.store.GetOrCreate(sessionID)

	categories := classifier.Classify(query)
	bundle := s.assembler.Build(ctx, categories)

	userMsg := core.Message{Role: core.RoleUser, Content: query}

	// The knowledge context is ephemeral: injected after the session's
	// system instruction for this call only, never stored.
	messages := make([]core.Message, 0, len(sess.Messages)+2)
	messages = append(messages, sess.Messages[0])
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: bundle.Prompt})
	messages = append(messages, sess.Messages[1:]...)
	messages = append(messages, userMsg)

	logger.Debug().
		Str("session", sessionID).
		Strs("categories", categoryNames(categories)).
		Int("estimate", bundle.TokenEstimate).
		Int("tiktoken", CountTokens(bundle.Prompt)).
		Msg("assembled context")

	var reply core.Message
	err := s.retrier.Do(ctx, func() error {
		var chatErr error
		reply, chatErr = s.ai.Chat(ctx, messages)
		return chatErr
	})
	if err != nil {
		return Answer{}, fmt.Errorf("model invocation failed: %w", err)
	}

	s.store.AppendExchange(sessionID, userMsg, reply)
	s.journal(ctx, sessionID, userMsg, reply, categories)

	return Answer{
		SessionID:     sessionID,
		Reply:         reply.Content,
		Categories:    categories,
		TokenEstimate: bundle.TokenEstimate,
	}, nil
}

// ContextualKnowledge exposes the classified categories and the assembled
// prompt for a query without invoking the model.
func (s *Service) ContextualKnowledge(ctx context.Context, query string) core.Bundle {
	bundle := s.assembler.Build(ctx, classifier.Classify(query))
	return bundle
}

// Reset restores a session to its initial state.
func (s *Service) Reset(sessionID string) error {
	if !s.store.Reset(sessionID) {
		return core.ErrSessionNotFound
	}
	return nil
}

func (s *Service) Stats() core.SessionStats {
	return s.store.Stats()
}

// journal records the exchange for audit. Failures are logged and swallowed.
func (s *Service) journal(ctx context.Context, sessionID string, user, assistant core.Message, categories []core.Category) {
	if s.transcripts == nil {
		return
	}
	if err := s.transcripts.Append(ctx, sessionID, user, categories); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to journal user message")
	}
	if err := s.transcripts.Append(ctx, sessionID, assistant, nil); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to journal assistant message")
	}
}

func categoryNames(cats []core.Category) []string {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, string(c))
	}
	return names
}
