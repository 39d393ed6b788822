package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Reon1917/AU-GURU/internal/core"
	"github.com/Reon1917/AU-GURU/internal/knowledge"
	"github.com/Reon1917/AU-GURU/internal/prompt"
	"github.com/Reon1917/AU-GURU/internal/session"
	"github.com/Reon1917/AU-GURU/pkg/retry"
)

type mockProvider struct {
	mu      sync.Mutex
	history []core.Message
	reply   core.Message
	err     error
	calls   int
}

func (m *mockProvider) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.history = append([]core.Message(nil), history...)
	if m.err != nil {
		return core.Message{}, m.err
	}
	return m.reply, nil
}

type mockTranscripts struct {
	mu      sync.Mutex
	entries []core.TranscriptEntry
	err     error
}

func (m *mockTranscripts) Append(ctx context.Context, sessionID string, msg core.Message, categories []core.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, core.TranscriptEntry{SessionID: sessionID, Role: msg.Role, Content: msg.Content})
	return nil
}

func (m *mockTranscripts) Recent(ctx context.Context, limit int) ([]core.TranscriptEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries, nil
}

func newTestService(t *testing.T, ai core.AIProvider, transcripts core.TranscriptRepo) *Service {
	t.Helper()
	kb := knowledge.Load(context.Background())
	registry := session.NewRegistry(session.DefaultConfig())
	return NewService(ai, registry, prompt.New(kb), transcripts)
}

func TestAsk_RoundTrip(t *testing.T) {
	ai := &mockProvider{reply: core.Message{Role: core.RoleAssistant, Content: "Tuition starts at 85,000 THB."}}
	journal := &mockTranscripts{}
	s := newTestService(t, ai, journal)
	ctx := context.Background()

	answer, err := s.Ask(ctx, "sess-1", "How much is tuition?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answer.SessionID != "sess-1" {
		t.Errorf("session id = %q", answer.SessionID)
	}
	if answer.Reply != "Tuition starts at 85,000 THB." {
		t.Errorf("reply = %q", answer.Reply)
	}
	if len(answer.Categories) != 1 || answer.Categories[0] != core.CategoryTuitions {
		t.Errorf("categories = %v, want [tuitions]", answer.Categories)
	}
	if answer.TokenEstimate <= 0 {
		t.Errorf("token estimate = %d", answer.TokenEstimate)
	}

	// The model saw: system instruction, knowledge context, user turn.
	if len(ai.history) != 3 {
		t.Fatalf("model received %d messages, want 3", len(ai.history))
	}
	if ai.history[0].Content != core.SystemInstruction {
		t.Error("first model message is not the system instruction")
	}
	if !strings.Contains(ai.history[1].Content, "TUITION FEES:") {
		t.Error("knowledge context not injected")
	}
	if ai.history[2].Role != core.RoleUser {
		t.Error("last model message is not the user turn")
	}

	if len(journal.entries) != 2 {
		t.Errorf("journal holds %d entries, want 2", len(journal.entries))
	}
}

func TestAsk_HistoryCarriesAcrossTurns(t *testing.T) {
	ai := &mockProvider{reply: core.Message{Role: core.RoleAssistant, Content: "ok"}}
	s := newTestService(t, ai, nil)
	ctx := context.Background()

	if _, err := s.Ask(ctx, "sess-1", "How much is tuition?"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Ask(ctx, "sess-1", "And the fees for engineering?"); err != nil {
		t.Fatal(err)
	}

	// Second turn: instruction + context + first exchange (2) + user turn.
	if len(ai.history) != 5 {
		t.Fatalf("model received %d messages, want 5", len(ai.history))
	}
	if ai.history[2].Content != "How much is tuition?" {
		t.Errorf("previous exchange missing from history: %v", ai.history)
	}
}

func TestAsk_ProviderFailureSurfaced(t *testing.T) {
	boom := errors.New("upstream unavailable")
	ai := &mockProvider{err: boom}
	s := newTestService(t, ai, nil)
	s.retrier = retry.NewRetrier(&retry.Config{MaxRetries: 1, BackoffFactor: 1, InitialDelay: time.Millisecond})

	_, err := s.Ask(context.Background(), "sess-1", "hello")
	if ai.calls != 2 {
		t.Errorf("provider called %d times, want an initial attempt plus one retry", ai.calls)
	}
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v does not wrap the provider failure", err)
	}

	// Failed turns must not pollute the history.
	sess := s.store.GetOrCreate("sess-1")
	if len(sess.Messages) != 1 {
		t.Errorf("failed turn was appended to the session: %v", sess.Messages)
	}
}

func TestAsk_JournalFailureDoesNotFailRequest(t *testing.T) {
	ai := &mockProvider{reply: core.Message{Role: core.RoleAssistant, Content: "ok"}}
	journal := &mockTranscripts{err: errors.New("disk full")}
	s := newTestService(t, ai, journal)

	if _, err := s.Ask(context.Background(), "sess-1", "hello"); err != nil {
		t.Errorf("journal failure surfaced to the caller: %v", err)
	}
}

func TestContextualKnowledge(t *testing.T) {
	s := newTestService(t, &mockProvider{}, nil)

	bundle := s.ContextualKnowledge(context.Background(), "asdkjasd")

	if len(bundle.Categories) != 2 {
		t.Fatalf("categories = %v, want the default pair", bundle.Categories)
	}
	if !strings.Contains(bundle.Prompt, "CONTACT INFORMATION:") || !strings.Contains(bundle.Prompt, "ACADEMIC PROGRAMS:") {
		t.Error("default pair sections missing")
	}
	if strings.Contains(bundle.Prompt, "TUITION FEES:") || strings.Contains(bundle.Prompt, "UNIVERSITY HISTORY:") {
		t.Error("unexpected sections for an unmatched query")
	}
}

func TestReset(t *testing.T) {
	ai := &mockProvider{reply: core.Message{Role: core.RoleAssistant, Content: "ok"}}
	s := newTestService(t, ai, nil)
	ctx := context.Background()

	if err := s.Reset("missing"); !errors.Is(err, core.ErrSessionNotFound) {
		t.Errorf("reset of unknown session = %v, want ErrSessionNotFound", err)
	}

	if _, err := s.Ask(ctx, "sess-1", "hello"); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset("sess-1"); err != nil {
		t.Errorf("reset of existing session failed: %v", err)
	}
}
