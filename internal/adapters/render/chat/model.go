// Package chat is the interactive terminal presentation adapter: a Bubble Tea
// program that renders the conversation and forwards each utterance to the
// conversation controller.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Responder is the single entry point into the conversational core. One
// utterance is fully handled before the next is accepted; the model enforces
// that by refusing input while a reply is in flight.
type Responder interface {
	Handle(ctx context.Context, text string) string
	Greeting() string
}

type role string

const (
	roleUser      role = "user"
	roleAssistant role = "assistant"
)

type chatMessage struct {
	role role
	text string
}

type replyMsg struct {
	text string
}

type Model struct {
	ctx       context.Context
	responder Responder
	title     string

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	styles   styles

	messages []chatMessage
	waiting  bool
	ready    bool
	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, responder Responder, title string) Model {
	input := textarea.New()
	input.Placeholder = "¿Qué necesitas con tu agenda?"
	input.CharLimit = 500
	input.SetHeight(1)
	input.ShowLineNumbers = false
	input.Focus()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model{
		ctx:       ctx,
		responder: responder,
		title:     title,
		input:     input,
		spinner:   s,
		styles:    newStyles(),
		messages: []chatMessage{
			{role: roleAssistant, text: responder.Greeting()},
		},
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.messages = append(m.messages, chatMessage{role: roleUser, text: text})
			m.input.Reset()
			m.waiting = true
			m.refreshViewport()
			return m, tea.Batch(m.spinner.Tick, m.respondCmd(text))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case replyMsg:
		m.messages = append(m.messages, chatMessage{role: roleAssistant, text: msg.text})
		m.waiting = false
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Cargando..."
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.styles.thinking.Render(fmt.Sprintf("%s Procesando...", m.spinner.View())))
	} else {
		b.WriteString(m.styles.inputBorder.Render(m.input.View()))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("enter: enviar · esc: salir"))

	return b.String()
}

func (m *Model) resize() {
	inputHeight := 3
	titleHeight := 1
	helpHeight := 1
	viewportHeight := m.height - inputHeight - titleHeight - helpHeight
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}
	m.input.SetWidth(m.width - 4)
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m *Model) renderMessages() string {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	lines := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		var rendered string
		switch msg.role {
		case roleUser:
			rendered = m.styles.userLabel.Render("Tú: ") + m.styles.userText.Render(msg.text)
		default:
			rendered = m.styles.assistantText.Render(msg.text)
		}
		lines = append(lines, lipgloss.NewStyle().Width(width).Render(rendered))
	}

	return strings.Join(lines, "\n\n")
}

func (m Model) respondCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{text: m.responder.Handle(m.ctx, text)}
	}
}

// Run drives the chat program until the user quits.
func Run(ctx context.Context, responder Responder, title string) error {
	program := tea.NewProgram(
		NewModel(ctx, responder, title),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run chat program: %w", err)
	}

	return nil
}
