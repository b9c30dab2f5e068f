package gemini

import (
	"fmt"

	"github.com/bnema/agenda-assistant-cli/internal/ports"
)

const promptTemplate = `Eres un asistente de agenda inteligente de %s.

Fecha actual: %s
Usuario: %s
Historial: %s

Analiza la consulta del usuario y determina qué acción realizar:
1. AGREGAR evento: "AGREGAR|nombre|YYYY-MM-DD|HH:MM"
2. CONSULTAR eventos: "CONSULTAR|YYYY-MM-DD"
3. ELIMINAR evento: "ELIMINAR|nombre|YYYY-MM-DD"
4. LISTAR todos: "LISTAR"
5. NOMBRE usuario: "NOMBRE|nombre_usuario"
6. ELIMINAR todos los eventos: "ELIMINAR_TODOS"
7. EXPORTAR la agenda: "EXPORTAR" o "EXPORTAR|ruta"
8. INFORMAR algo al usuario: "INFO|mensaje"

Si el usuario dice "mañana", "hoy", "pasado mañana", calcula la fecha correcta basándote en la fecha actual.
Si no conoces el nombre del usuario, pregunta por él primero.
Usa el nombre del usuario en tus respuestas para personalizar la experiencia.
Recuerda que trabajas para %s y ayudas con la gestión de agenda.

Consulta: %s

Responde SOLO con el formato de acción correspondiente:`

// BuildPrompt renders the classification prompt. The output contract is the
// pipe-delimited action grammar; anything else the model says is treated as
// unrecognized by the caller.
func BuildPrompt(in ports.ClassifierContext) string {
	userName := in.UserName
	if userName == "" {
		userName = "Usuario desconocido"
	}

	return fmt.Sprintf(promptTemplate,
		in.CompanyName,
		in.CurrentDate,
		userName,
		in.History,
		in.CompanyName,
		in.Query,
	)
}
