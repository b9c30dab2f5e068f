// Package toml implements the event repository as a single TOML file with
// atomic replace-on-write. The per-path lock gives the file a single-writer
// discipline even when several sessions share one agenda.
package toml

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/agenda-assistant-cli/internal/domain"
	"github.com/bnema/agenda-assistant-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "toml"
	agendaPathKey   = "agenda.path"
	agendaFileMode  = 0o600
	agendaDirMode   = 0o700
	exportFileMode  = 0o644
	agendaConfigDir = ".agenda"
	agendaFile      = "agenda.toml"
	tempFilePattern = ".agenda-*.toml.tmp"
)

var exportHeader = []string{"Evento", "Fecha", "Hora"}

type Repository struct {
	agendaPath string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.EventRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, agendaConfigDir, agendaFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, agendaConfigDir))
	cfg.SetDefault(agendaPathKey, defaultPath)
	_ = cfg.BindEnv(agendaPathKey, "AGENDA_FILE")

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	agendaPath := cfg.GetString(agendaPathKey)
	if agendaPath == "" {
		return nil, errors.New("agenda path is empty")
	}
	agendaPath, err = normalizeAgendaPath(agendaPath)
	if err != nil {
		return nil, err
	}

	return &Repository{agendaPath: agendaPath, mu: lockForPath(agendaPath)}, nil
}

func (r *Repository) Save(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	file.Events = append(file.Events, eventSchema{
		Evento: event.Name,
		Fecha:  event.Date,
		Hora:   event.Time,
	})

	return r.writeSchema(file)
}

func (r *Repository) FindByDate(ctx context.Context, date string) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	var events []domain.Event
	for _, entry := range file.Events {
		if entry.Fecha == date {
			events = append(events, fromSchema(entry))
		}
	}

	return events, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(file.Events))
	for _, entry := range file.Events {
		events = append(events, fromSchema(entry))
	}

	return events, nil
}

func (r *Repository) Delete(ctx context.Context, name, date string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := make([]eventSchema, 0, len(file.Events))
	removed := false
	for _, entry := range file.Events {
		if fromSchema(entry).Matches(name, date) {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}

	if !removed {
		return domain.ErrEventNotFound
	}

	file.Events = kept
	return r.writeSchema(file)
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	file.Events = nil
	return r.writeSchema(file)
}

// Export writes the agenda as CSV with the Evento/Fecha/Hora header.
func (r *Repository) Export(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	if len(file.Events) == 0 {
		return domain.ErrEmptyAgenda
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, exportFileMode)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	writer := csv.NewWriter(out)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, entry := range file.Events {
		if err := writer.Write([]string{entry.Evento, entry.Fecha, entry.Hora}); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush export file: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	return nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.agendaPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read agenda file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode agenda file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.agendaPath), agendaDirMode); err != nil {
		return fmt.Errorf("create agenda directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode agenda file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.agendaPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp agenda file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp agenda file: %w", err)
	}

	if err := tempFile.Chmod(agendaFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp agenda file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp agenda file: %w", err)
	}

	if err := os.Rename(tempName, r.agendaPath); err != nil {
		return fmt.Errorf("replace agenda file: %w", err)
	}

	cleanup = false

	return nil
}

func fromSchema(entry eventSchema) domain.Event {
	return domain.Event{Name: entry.Evento, Date: entry.Fecha, Time: entry.Hora}
}

func normalizeAgendaPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve agenda path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
