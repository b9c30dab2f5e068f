package domain

import "strings"

type Speaker string

const (
	SpeakerUser      Speaker = "Usuario"
	SpeakerAssistant Speaker = "Asistente"
)

// Turn is a single utterance in the conversation history.
type Turn struct {
	Speaker Speaker
	Text    string
}

const (
	// maxHistoryTurns bounds the rolling history to six exchanges.
	maxHistoryTurns = 12
	// promptHistoryTurns is how many recent turns feed the classifier.
	promptHistoryTurns = 6
)

// Pending is a destructive action awaiting explicit yes/no from the user.
// At most one is armed at a time.
type Pending interface {
	isPending()
}

// PendingSingleDeletion records a delete request for one event.
type PendingSingleDeletion struct {
	Event string
	Date  string
}

// PendingBulkDeletion records a delete-everything request.
type PendingBulkDeletion struct{}

func (PendingSingleDeletion) isPending() {}
func (PendingBulkDeletion) isPending()   {}

// Session is the per-conversation state. It lives for the process lifetime
// and is never persisted.
type Session struct {
	UserName string
	Pending  Pending
	History  []Turn
}

func (s *Session) Named() bool {
	return s.UserName != ""
}

// Remember appends a turn, dropping the oldest once the bound is reached.
func (s *Session) Remember(speaker Speaker, text string) {
	s.History = append(s.History, Turn{Speaker: speaker, Text: text})
	if len(s.History) > maxHistoryTurns {
		s.History = s.History[len(s.History)-maxHistoryTurns:]
	}
}

// RecentHistory renders the most recent turns as "Speaker: text" lines for
// the classifier prompt.
func (s *Session) RecentHistory() string {
	turns := s.History
	if len(turns) > promptHistoryTurns {
		turns = turns[len(turns)-promptHistoryTurns:]
	}

	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, string(turn.Speaker)+": "+turn.Text)
	}

	return strings.Join(lines, "\n")
}
