package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/agenda-assistant-cli/internal/adapters/classifier/gemini"
	tomlrepo "github.com/bnema/agenda-assistant-cli/internal/adapters/repo/toml"
	filestore "github.com/bnema/agenda-assistant-cli/internal/adapters/secrets/file"
	"github.com/bnema/agenda-assistant-cli/internal/application"
	"github.com/bnema/agenda-assistant-cli/internal/logging"
	"github.com/bnema/agenda-assistant-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	companyNameKey       = "company.name"
	classifierModelKey   = "classifier.model"
	classifierTimeoutKey = "classifier.timeout"

	apiKeyEnv       = "GEMINI_API_KEY"
	companyEnv      = "AGENDA_COMPANY"
	geminiBaseEnv   = "AGENDA_GEMINI_BASE_URL"
	keyIndirectMark = "KEY_"
)

type app struct {
	service     *application.AgendaService
	secretStore ports.SecretStore
	company     string
	model       string
	timeout     time.Duration
	baseURL     string
}

func wireApp() (*app, error) {
	log := logging.New("wire")

	cfg := viper.New()
	cfg.SetDefault(companyNameKey, application.DefaultCompanyName)
	cfg.SetDefault(classifierModelKey, gemini.DefaultModel)
	cfg.SetDefault(classifierTimeoutKey, "15s")
	_ = cfg.BindEnv(companyNameKey, companyEnv)

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		log.Error("wire event repository", nil, err)
		return nil, fmt.Errorf("wire event repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	log.Debug("app wired", map[string]any{
		"company": cfg.GetString(companyNameKey),
		"model":   cfg.GetString(classifierModelKey),
	})

	return &app{
		service:     application.NewAgendaService(repo),
		secretStore: filestore.NewStore(filepath.Join(homeDir, ".agenda", "secrets")),
		company:     cfg.GetString(companyNameKey),
		model:       cfg.GetString(classifierModelKey),
		timeout:     cfg.GetDuration(classifierTimeoutKey),
		baseURL:     os.Getenv(geminiBaseEnv),
	}, nil
}

// newConversation builds a fresh single-session assistant around the shared
// service. Each invocation starts with empty history.
func (a *app) newConversation(ctx context.Context) *application.Conversation {
	conv := application.NewConversation(a.service, a.newClassifier(ctx), ports.SystemClock{}, a.company)
	if a.timeout > 0 {
		conv.SetClassifyTimeout(a.timeout)
	}
	return conv
}

func (a *app) newClassifier(ctx context.Context) ports.Classifier {
	client := gemini.New(a.resolveAPIKey(ctx), a.model)
	if a.baseURL != "" {
		client = client.WithBaseURL(a.baseURL)
	}
	return client
}

// resolveAPIKey prefers the environment, following one level of KEY_
// indirection (a value like "KEY_PROD" names the env var holding the real
// key), then falls back to the local secret store.
func (a *app) resolveAPIKey(ctx context.Context) string {
	key := os.Getenv(apiKeyEnv)
	if strings.HasPrefix(key, keyIndirectMark) {
		key = os.Getenv(key)
	}
	if key != "" {
		return key
	}

	stored, err := a.secretStore.Get(ctx, filestore.GeminiAPIKey)
	if err != nil {
		return ""
	}
	return stored
}
