package core

import "time"

const (
	AppName       = "AU-GURU"
	UserAgent     = "AU-GURU/1.0"
	RepositoryURL = "https://github.com/Reon1917/AU-GURU"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SystemInstruction is the fixed first message of every session. Trimming
// never removes it.
const SystemInstruction = "You are AU GURU, the virtual assistant of Assumption University of Thailand. " +
	"You help current and prospective students with questions about the university. " +
	"Be friendly, concise and factual. If you are not sure about something, say so " +
	"instead of guessing."

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Category is one of the four fixed knowledge buckets used to scope prompt
// context.
type Category string

const (
	CategoryContacts  Category = "contacts"
	CategoryFaculties Category = "faculties"
	CategoryHistory   Category = "history"
	CategoryTuitions  Category = "tuitions"
)

// CategoryOrder is the canonical enumeration order. Prompt sections are
// always emitted in this order regardless of how a category set was built.
var CategoryOrder = []Category{
	CategoryContacts,
	CategoryFaculties,
	CategoryHistory,
	CategoryTuitions,
}

// Bundle is the rendered prompt context for one query. Ephemeral, recomputed
// per request; the token estimate is coarse (ceil of chars/4), not
// authoritative.
type Bundle struct {
	Prompt        string     `json:"prompt"`
	Categories    []Category `json:"categories"`
	TokenEstimate int        `json:"token_estimate"`
}

// Session is one server-side conversation, keyed by an opaque identifier.
// Messages[0] is always SystemInstruction.
type Session struct {
	ID           string    `json:"id"`
	Messages     []Message `json:"messages"`
	LastActivity time.Time `json:"last_activity"`
}

type SessionStats struct {
	ActiveSessions int `json:"active_sessions"`
	TotalMessages  int `json:"total_messages"`
}

type TranscriptEntry struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Categories string    `json:"categories,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
