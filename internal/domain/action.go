package domain

import "strings"

// Action is a structured command decoded from the classifier's pipe-delimited
// token. The token is parsed exactly once, here; the rest of the application
// works on typed variants.
type Action interface {
	isAction()
}

type SetName struct {
	Name string
}

type AddEvent struct {
	Name string
	Date string
	Time string
}

type QueryDay struct {
	Date string
}

type RemoveEvent struct {
	Name string
	Date string
}

type ListAll struct{}

type RemoveAll struct{}

type ExportAgenda struct {
	// Path is optional; empty means the default export file.
	Path string
}

type Inform struct {
	Message string
}

// Unknown carries anything that did not match the grammar. It routes to the
// help reply.
type Unknown struct {
	Raw string
}

func (SetName) isAction()      {}
func (AddEvent) isAction()     {}
func (QueryDay) isAction()     {}
func (RemoveEvent) isAction()  {}
func (ListAll) isAction()      {}
func (RemoveAll) isAction()    {}
func (ExportAgenda) isAction() {}
func (Inform) isAction()       {}
func (Unknown) isAction()      {}

// ParseAction decodes a raw classifier line. The command word is matched
// case-insensitively; a wrong field count falls through to Unknown.
func ParseAction(raw string) Action {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Unknown{Raw: raw}
	}

	parts := strings.Split(trimmed, "|")
	command := strings.ToUpper(strings.TrimSpace(parts[0]))

	switch command {
	case "NOMBRE":
		if len(parts) == 2 {
			return SetName{Name: strings.TrimSpace(parts[1])}
		}
	case "AGREGAR":
		if len(parts) == 4 {
			return AddEvent{
				Name: strings.TrimSpace(parts[1]),
				Date: strings.TrimSpace(parts[2]),
				Time: strings.TrimSpace(parts[3]),
			}
		}
	case "CONSULTAR":
		if len(parts) == 2 {
			return QueryDay{Date: strings.TrimSpace(parts[1])}
		}
	case "ELIMINAR":
		if len(parts) == 3 {
			return RemoveEvent{
				Name: strings.TrimSpace(parts[1]),
				Date: strings.TrimSpace(parts[2]),
			}
		}
	case "LISTAR":
		if len(parts) == 1 {
			return ListAll{}
		}
	case "ELIMINAR_TODOS":
		if len(parts) == 1 {
			return RemoveAll{}
		}
	case "EXPORTAR":
		switch len(parts) {
		case 1:
			return ExportAgenda{}
		case 2:
			return ExportAgenda{Path: strings.TrimSpace(parts[1])}
		}
	case "INFO":
		if len(parts) >= 2 {
			// The message itself may contain pipes.
			return Inform{Message: strings.TrimSpace(strings.Join(parts[1:], "|"))}
		}
	}

	return Unknown{Raw: raw}
}
