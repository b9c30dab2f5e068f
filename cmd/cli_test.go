package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventAddThenList(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "event", "add", "Reunión", "2024-03-05", "10:00")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Evento 'Reunión' agregado para 2024-03-05 a las 10:00")

	stdout, _, err = executeCLI(t, home, "event", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Todos los eventos:")
	assert.Contains(t, stdout, "- Reunión el 2024-03-05 a las 10:00")
}

func TestEventAddRejectsMalformedDate(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "event", "add", "Reunión", "05-03-2024", "10:00")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Error de validación: la fecha '05-03-2024' no es válida")

	stdout, _, err = executeCLI(t, home, "event", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No hay eventos en la agenda")
}

func TestEventOnFiltersByDate(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "event", "add", "Reunión", "2024-03-05", "10:00")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "event", "add", "Almuerzo", "2024-03-06", "13:00")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "event", "on", "2024-03-05")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Eventos para 2024-03-05:")
	assert.Contains(t, stdout, "Reunión")
	assert.NotContains(t, stdout, "Almuerzo")

	stdout, _, err = executeCLI(t, home, "event", "on", "2024-03-07")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No hay eventos programados para 2024-03-07")
}

func TestEventDeleteRequiresYesFlag(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "event", "add", "Reunión", "2024-03-05", "10:00")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "event", "delete", "Reunión", "2024-03-05")
	require.Error(t, err)
	assert.ErrorIs(t, err, errConfirmationRequired)

	stdout, _, err := executeCLI(t, home, "event", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Reunión")
}

func TestEventDeleteWithYesRemovesEvent(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "event", "add", "Reunión", "2024-03-05", "10:00")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "event", "delete", "reunión", "2024-03-05", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Evento 'reunión' eliminado de 2024-03-05")

	stdout, _, err = executeCLI(t, home, "event", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No hay eventos en la agenda")
}

func TestEventClearWithYesEmptiesAgenda(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "event", "add", "Reunión", "2024-03-05", "10:00")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "event", "add", "Almuerzo", "2024-03-06", "13:00")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "event", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Todos los eventos han sido eliminados")

	stdout, _, err = executeCLI(t, home, "event", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No hay eventos en la agenda")
}

func TestExportWritesCSV(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "event", "add", "Reunión", "2024-03-05", "10:00")
	require.NoError(t, err)

	exportPath := filepath.Join(home, "export.csv")
	stdout, _, err := executeCLI(t, home, "export", exportPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Agenda exportada a "+exportPath)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Equal(t, "Evento,Fecha,Hora\nReunión,2024-03-05,10:00\n", string(data))
}

func TestExportEmptyAgenda(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "export", filepath.Join(home, "export.csv"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "No hay eventos para exportar")
}

func TestAskWithoutNameAsksForIt(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "ask", "hola, qué tal")
	require.NoError(t, err)
	assert.Contains(t, stdout, "¿podrías decirme tu nombre?")
}

func TestAskWithNameAndStubbedClassifier(t *testing.T) {
	home := t.TempDir()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]string{{"text": "AGREGAR|Reunión|2024-03-05|10:00"}},
				},
			}},
		})
	}))
	defer server.Close()

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("AGENDA_GEMINI_BASE_URL", server.URL)

	stdout, _, err := executeCLI(t, home, "ask", "--name", "Camilo", "agrega una reunión el martes a las 10")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Camilo, Evento 'Reunión' agregado para 2024-03-05 a las 10:00")

	stdout, _, err = executeCLI(t, home, "event", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Reunión")
}

func TestAskWithoutAPIKeyFallsBackToHelp(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	stdout, _, err := executeCLI(t, home, "ask", "--name", "Camilo", "agrega una reunión")
	require.NoError(t, err)
	assert.Contains(t, stdout, "¡Hola Camilo! Puedo ayudarte con tu agenda.")
}

func TestCompanyNameFromEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("AGENDA_COMPANY", "Audifarma")

	stdout, _, err := executeCLI(t, home, "ask", "hola, qué tal")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Soy tu asistente de agenda de Audifarma")
}

func TestAuthSetShowRemove(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "auth", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no API key stored")

	stdout, _, err = executeCLI(t, home, "auth", "set", "--api-key", "secret-value-123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "API key stored")

	stdout, _, err = executeCLI(t, home, "auth", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "API key stored (secr****)")
	assert.NotContains(t, stdout, "secret-value-123")

	stdout, _, err = executeCLI(t, home, "auth", "remove")
	require.NoError(t, err)
	assert.Contains(t, stdout, "API key removed")

	stdout, _, err = executeCLI(t, home, "auth", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no API key stored")
}

func TestAuthSetRequiresAPIKeyFlag(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "auth", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"api-key\" not set")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestAgendaPathFromEnvironment(t *testing.T) {
	home := t.TempDir()
	agendaPath := filepath.Join(home, "custom", "agenda.toml")
	t.Setenv("AGENDA_FILE", agendaPath)

	_, _, err := executeCLI(t, home, "event", "add", "Reunión", "2024-03-05", "10:00")
	require.NoError(t, err)

	_, statErr := os.Stat(agendaPath)
	require.NoError(t, statErr)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
