// Package gemini classifies user utterances by calling the Gemini REST API.
// The model is treated as an untrusted dependency: one attempt per utterance,
// bounded by the caller's context, and any failure surfaces as an error the
// conversation degrades from.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/bnema/agenda-assistant-cli/internal/logging"
	"github.com/bnema/agenda-assistant-cli/internal/ports"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	// DefaultModel is the model the original assistant was built against.
	DefaultModel = "gemini-2.5-flash"
)

var ErrMissingAPIKey = errors.New("gemini api key is not configured")

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  HTTPClient
	log     *logging.Logger
}

var _ ports.Classifier = (*Client)(nil)

func New(apiKey, model string) *Client {
	return NewWithClient(apiKey, model, &http.Client{})
}

func NewWithClient(apiKey, model string, client HTTPClient) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
	}
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  client,
		log:     logging.New("gemini"),
	}
}

// WithBaseURL overrides the API endpoint, for tests and proxies.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type generateRequest struct {
	Contents         []content  `json:"contents"`
	GenerationConfig *genConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Classify sends the prompt and returns the model's first line of output.
func (c *Client) Classify(ctx context.Context, in ports.ClassifierContext) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: BuildPrompt(in)}},
		}},
		GenerationConfig: &genConfig{Temperature: 0, MaxOutputTokens: 64},
	})
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("gemini request failed", map[string]any{"model": c.model}, err)
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := resp.Status
		if decoded.Error != nil {
			message = decoded.Error.Message
		}
		c.log.Warn("gemini request rejected", map[string]any{"status": resp.StatusCode}, errors.New(message))
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, message)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	text := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if line, _, found := strings.Cut(text, "\n"); found {
		text = strings.TrimSpace(line)
	}

	return text, nil
}
