package application

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/bnema/agenda-assistant-cli/internal/domain"
	"github.com/bnema/agenda-assistant-cli/internal/logging"
	"github.com/bnema/agenda-assistant-cli/internal/ports"
)

const (
	// DefaultCompanyName brands the assistant when no company is configured.
	DefaultCompanyName = "Tu Empresa"

	// defaultClassifyTimeout bounds the wait on the language model; expiry
	// degrades to the help reply like any other classifier failure.
	defaultClassifyTimeout = 15 * time.Second

	dateLayout = "2006-01-02"
)

// Conversation owns one session's state and drives the command-dispatch state
// machine: name capture, classifier context building, action interpretation,
// and the confirm-before-destroy protocol. It is not safe for concurrent use;
// callers must serialize utterances per session. Distinct sessions are fully
// independent.
//
// Handle is total: it always returns a reply string and never panics past its
// boundary, so the session stays usable after any failure.
type Conversation struct {
	service    *AgendaService
	classifier ports.Classifier
	clock      ports.Clock
	company    string
	timeout    time.Duration
	session    domain.Session
	log        *logging.Logger
}

func NewConversation(service *AgendaService, classifier ports.Classifier, clock ports.Clock, company string) *Conversation {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if strings.TrimSpace(company) == "" {
		company = DefaultCompanyName
	}

	return &Conversation{
		service:    service,
		classifier: classifier,
		clock:      clock,
		company:    company,
		timeout:    defaultClassifyTimeout,
		log:        logging.New("conversation"),
	}
}

// SetClassifyTimeout overrides the bounded wait on the classifier.
// A non-positive value disables the bound.
func (c *Conversation) SetClassifyTimeout(d time.Duration) {
	c.timeout = d
}

// SetUserName preseeds the session's user name, skipping the name-capture
// phase.
func (c *Conversation) SetUserName(name string) {
	if name = strings.TrimSpace(name); name != "" {
		c.session.UserName = capitalize(name)
	}
}

func (c *Conversation) UserName() string {
	return c.session.UserName
}

// Greeting is the assistant's opening line before any user input.
func (c *Conversation) Greeting() string {
	if c.session.Named() {
		return fmt.Sprintf("¡Hola %s! Soy tu asistente de agenda de %s. ¿En qué puedo ayudarte?", c.session.UserName, c.company)
	}
	return c.askForName()
}

// Handle processes one utterance and returns the reply. Priority order: a
// pending confirmation always wins, then name capture while the user is
// unknown, then normal classifier dispatch.
func (c *Conversation) Handle(ctx context.Context, text string) string {
	utterance := strings.TrimSpace(text)

	if c.session.Pending != nil {
		return c.resolvePending(ctx, utterance)
	}

	if !c.session.Named() {
		if name, ok := captureName(utterance); ok {
			c.session.UserName = name
			return c.welcome()
		}
		return c.askForName()
	}

	return c.dispatch(ctx, utterance)
}

// resolvePending handles the yes/no turn of the confirm-before-destroy
// protocol. Anything that is neither re-prompts without consuming the turn.
func (c *Conversation) resolvePending(ctx context.Context, utterance string) string {
	switch {
	case domain.IsAffirmative(utterance):
		pending := c.session.Pending
		c.session.Pending = nil
		c.session.Remember(domain.SpeakerUser, utterance)

		var outcome string
		switch p := pending.(type) {
		case domain.PendingSingleDeletion:
			outcome = c.service.DeleteEvent(ctx, p.Event, p.Date)
		case domain.PendingBulkDeletion:
			outcome = c.service.DeleteAllEvents(ctx)
		default:
			outcome = "no hay ninguna operación pendiente"
		}

		reply := c.withName(outcome)
		c.session.Remember(domain.SpeakerAssistant, reply)
		return reply

	case domain.IsNegative(utterance):
		c.session.Pending = nil
		c.session.Remember(domain.SpeakerUser, utterance)
		reply := c.withName("de acuerdo, no se ha eliminado nada")
		c.session.Remember(domain.SpeakerAssistant, reply)
		return reply

	default:
		return c.withName("tengo una eliminación pendiente de confirmar. Responde 'sí' o 'no'")
	}
}

// dispatch is the normal path: record the turn, ask the classifier, interpret
// the action token, record the reply.
func (c *Conversation) dispatch(ctx context.Context, utterance string) (reply string) {
	c.session.Remember(domain.SpeakerUser, utterance)

	defer func() {
		if r := recover(); r != nil {
			c.log.Error("dispatch panic", map[string]any{"panic": fmt.Sprint(r)}, nil)
			reply = fmt.Sprintf("%s, ❌ Error: %v", c.session.UserName, r)
			c.session.Remember(domain.SpeakerAssistant, reply)
		}
	}()

	action := c.classify(ctx, utterance)
	reply = c.apply(ctx, action)
	c.session.Remember(domain.SpeakerAssistant, reply)
	return reply
}

// classify invokes the language model with a bounded wait. Any failure or
// timeout yields Unknown, which routes to the help reply; there is no retry.
func (c *Conversation) classify(ctx context.Context, utterance string) domain.Action {
	in := ports.ClassifierContext{
		Query:       utterance,
		History:     c.session.RecentHistory(),
		CurrentDate: c.clock.Now().Format(dateLayout),
		UserName:    c.session.UserName,
		CompanyName: c.company,
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.classifier.Classify(ctx, in)
	if err != nil {
		c.log.Warn("classifier unavailable", map[string]any{"query": utterance}, err)
		return domain.Unknown{}
	}

	return domain.ParseAction(raw)
}

func (c *Conversation) apply(ctx context.Context, action domain.Action) string {
	switch a := action.(type) {
	case domain.SetName:
		if a.Name == "" {
			return c.help()
		}
		c.session.UserName = capitalize(a.Name)
		return c.welcome()

	case domain.AddEvent:
		if a.Name == "" {
			return c.withName("el nombre del evento no puede estar vacío")
		}
		if err := domain.ValidateDate(a.Date); err != nil {
			return c.withName(fmt.Sprintf("la fecha '%s' no es válida. Usa formato YYYY-MM-DD", a.Date))
		}
		if err := domain.ValidateTime(a.Time); err != nil {
			return c.withName(fmt.Sprintf("la hora '%s' no es válida. Usa formato HH:MM", a.Time))
		}
		return c.withName(c.service.CreateEvent(ctx, a.Name, a.Date, a.Time))

	case domain.QueryDay:
		if err := domain.ValidateDate(a.Date); err != nil {
			return c.withName(fmt.Sprintf("la fecha '%s' no es válida. Usa formato YYYY-MM-DD", a.Date))
		}
		return c.withName(c.service.GetEventsByDate(ctx, a.Date))

	case domain.RemoveEvent:
		if a.Name == "" {
			return c.withName("el nombre del evento no puede estar vacío")
		}
		if err := domain.ValidateDate(a.Date); err != nil {
			return c.withName(fmt.Sprintf("la fecha '%s' no es válida. Usa formato YYYY-MM-DD", a.Date))
		}
		exists, err := c.service.HasEvent(ctx, a.Name, a.Date)
		if err != nil {
			return c.errorReply(err)
		}
		if !exists {
			return c.withName(fmt.Sprintf("no se encontró el evento '%s' en la fecha %s", a.Name, a.Date))
		}
		c.session.Pending = domain.PendingSingleDeletion{Event: a.Name, Date: a.Date}
		return c.withName(fmt.Sprintf("¿seguro que quieres eliminar '%s' del %s? Responde 'sí' o 'no'", a.Name, a.Date))

	case domain.ListAll:
		return c.withName(c.service.GetAllEvents(ctx))

	case domain.RemoveAll:
		empty, err := c.service.IsEmpty(ctx)
		if err != nil {
			return c.errorReply(err)
		}
		if empty {
			return c.withName("no hay eventos para eliminar")
		}
		c.session.Pending = domain.PendingBulkDeletion{}
		return c.withName("¿seguro que quieres eliminar todos los eventos de la agenda? Responde 'sí' o 'no'")

	case domain.ExportAgenda:
		return c.withName(c.service.ExportAgenda(ctx, a.Path))

	case domain.Inform:
		return c.withName(a.Message)

	default:
		return c.help()
	}
}

func (c *Conversation) welcome() string {
	return fmt.Sprintf("¡Hola %s! Es un placer conocerte. Soy tu asistente de agenda de %s y estoy aquí para ayudarte con la gestión de tu agenda personal.", c.session.UserName, c.company)
}

func (c *Conversation) askForName() string {
	return fmt.Sprintf("¡Hola! Soy tu asistente de agenda de %s. Antes de ayudarte, ¿podrías decirme tu nombre?", c.company)
}

func (c *Conversation) help() string {
	return fmt.Sprintf("¡Hola %s! Puedo ayudarte con tu agenda. Ejemplos:\n- 'Agregar reunión mañana 10:30'\n- '¿Qué tengo el 2024-01-15?'\n- 'Eliminar reunión'", c.session.UserName)
}

func (c *Conversation) withName(message string) string {
	return fmt.Sprintf("%s, %s", c.session.UserName, message)
}

func (c *Conversation) errorReply(err error) string {
	return fmt.Sprintf("%s, ❌ Error: %v", c.session.UserName, err)
}

// namePhrases are the introductions scanned for a name, longest first so
// "mi nombre es" wins over a later "soy".
var namePhrases = [][]string{
	{"mi", "nombre", "es"},
	{"me", "llamo"},
	{"soy"},
}

// captureName applies the documented heuristics: a single alphabetic token is
// taken as the name; otherwise the word following "soy", "me llamo" or
// "mi nombre es". The heuristic is known to misfire on one-word commands
// typed before a name is known; that ambiguity is accepted as documented.
func captureName(utterance string) (string, bool) {
	if utterance == "" {
		return "", false
	}

	words := strings.Fields(utterance)
	if len(words) == 1 && isAlphabetic(words[0]) {
		return capitalize(words[0]), true
	}

	lowered := make([]string, len(words))
	for i, word := range words {
		lowered[i] = strings.ToLower(stripPunct(word))
	}

	for _, phrase := range namePhrases {
		for i := 0; i+len(phrase) < len(words); i++ {
			if !matchesPhrase(lowered[i:], phrase) {
				continue
			}
			candidate := stripPunct(words[i+len(phrase)])
			if candidate != "" {
				return capitalize(candidate), true
			}
		}
	}

	return "", false
}

func matchesPhrase(words []string, phrase []string) bool {
	if len(words) < len(phrase) {
		return false
	}
	for i, p := range phrase {
		if words[i] != p {
			return false
		}
	}
	return true
}

func stripPunct(word string) string {
	return strings.Trim(word, ".,;:!?¡¿\"'()")
}

func isAlphabetic(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return word != ""
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
