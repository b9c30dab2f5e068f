package ports

import "context"

// SecretStore keeps credentials (the Gemini API key) out of the config file.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
