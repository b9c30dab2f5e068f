package chat

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponder struct {
	replies []string
	seen    []string
}

func (s *stubResponder) Handle(_ context.Context, text string) string {
	s.seen = append(s.seen, text)
	if len(s.replies) == 0 {
		return "sin respuesta"
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply
}

func (s *stubResponder) Greeting() string {
	return "¡Hola! Soy el asistente de agenda."
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestViewShowsGreetingOnStart(t *testing.T) {
	m := sized(NewModel(context.Background(), &stubResponder{}, "Agenda"))

	view := m.View()
	assert.Contains(t, view, "Agenda")
	assert.Contains(t, view, "¡Hola! Soy el asistente de agenda.")
	assert.Contains(t, view, "enter: enviar")
}

func TestEnterSendsInputAndRendersReply(t *testing.T) {
	responder := &stubResponder{replies: []string{"Evento 'Reunión' agregado para 2024-03-05 a las 10:00"}}
	m := sized(NewModel(context.Background(), responder, "Agenda"))

	m.input.SetValue("agrega reunión el martes a las 10")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Contains(t, m.View(), "Procesando")

	updated, _ = m.Update(replyMsg{text: responder.Handle(context.Background(), "agrega reunión el martes a las 10")})
	m = updated.(Model)

	assert.False(t, m.waiting)
	assert.Equal(t, []string{"agrega reunión el martes a las 10"}, responder.seen)
	assert.Contains(t, m.View(), "Tú:")
	assert.Contains(t, m.View(), "Evento 'Reunión' agregado")
}

func TestEnterIgnoresBlankInput(t *testing.T) {
	m := sized(NewModel(context.Background(), &stubResponder{}, "Agenda"))

	m.input.SetValue("   ")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.False(t, m.waiting)
	assert.Len(t, m.messages, 1)
}

func TestEnterIgnoredWhileWaiting(t *testing.T) {
	m := sized(NewModel(context.Background(), &stubResponder{}, "Agenda"))
	m.waiting = true

	m.input.SetValue("otra cosa")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Len(t, m.messages, 1)
}

func TestEscQuits(t *testing.T) {
	m := sized(NewModel(context.Background(), &stubResponder{}, "Agenda"))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestRespondCmdProducesReplyMsg(t *testing.T) {
	responder := &stubResponder{replies: []string{"Todos los eventos:\n- Reunión el 2024-03-05 a las 10:00"}}
	m := NewModel(context.Background(), responder, "Agenda")

	msg := m.respondCmd("lista todo")()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(reply.text, "Todos los eventos:"))
	assert.Equal(t, []string{"lista todo"}, responder.seen)
}
