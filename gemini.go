package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	// DefaultGeminiEndpoint is the base URL of the Generative Language API
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultGeminiModel is the model used when none is configured
	DefaultGeminiModel = "gemini-2.0-flash-exp"
)

// Ensure GeminiClient implements LLMProvider
var _ LLMProvider = (*GeminiClient)(nil)

// GeminiClient implements LLMProvider for Google Gemini API
type GeminiClient struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// GeminiRequest represents a request to the Gemini API
type GeminiRequest struct {
	Contents         []GeminiContent         `json:"contents"`
	SystemInstruct   *GeminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

// GeminiContent represents a content block in Gemini format
type GeminiContent struct {
	Role  string       `json:"role"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart represents a part of content (text, etc.)
type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiGenerationConfig contains generation parameters
type GeminiGenerationConfig struct {
	Temperature      float64       `json:"temperature"`
	TopK             int           `json:"topK"`
	TopP             float64       `json:"topP"`
	MaxOutputTokens  int           `json:"maxOutputTokens"`
	ResponseMimeType string        `json:"responseMimeType"`
	ResponseSchema   *genai.Schema `json:"responseSchema,omitempty"`
}

// NewGeminiProvider creates a GeminiClient as an LLMProvider
func NewGeminiProvider(cfg *ProviderConfig) (LLMProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultGeminiEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = RequestTimeout
	}

	return &GeminiClient{
		apiKey:     cfg.APIKey,
		model:      model,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     loggerOrNop(cfg.Logger),
	}, nil
}

// Name returns the provider name
func (c *GeminiClient) Name() string {
	return "Google Gemini"
}

// Model returns the model ID
func (c *GeminiClient) Model() string {
	return c.model
}

// ResponseSchemaFor returns the JSON schema constraining an operation's
// output, or nil for free text.
func ResponseSchemaFor(op Operation) *genai.Schema {
	switch op.Shape() {
	case ShapeFindings:
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				op.Field(): {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{op.Field()},
		}
	case ShapeMutation:
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				op.Field(): {Type: genai.TypeString},
			},
			Required: []string{op.Field()},
		}
	default:
		return nil
	}
}

// BuildGeminiRequest assembles the request payload for an operation
func BuildGeminiRequest(op Operation, body string) GeminiRequest {
	genCfg := &GeminiGenerationConfig{
		Temperature:      SamplingTemperature,
		TopK:             SamplingTopK,
		TopP:             SamplingTopP,
		MaxOutputTokens:  MaxOutputTokens,
		ResponseMimeType: "text/plain",
	}
	if schema := ResponseSchemaFor(op); schema != nil {
		genCfg.ResponseMimeType = "application/json"
		genCfg.ResponseSchema = schema
	}

	return GeminiRequest{
		Contents: []GeminiContent{{
			Role:  "user",
			Parts: []GeminiPart{{Text: BuildUserPrompt(op, body)}},
		}},
		SystemInstruct: &GeminiContent{
			Role:  "system",
			Parts: []GeminiPart{{Text: SystemPromptFor(op)}},
		},
		GenerationConfig: genCfg,
	}
}

// requestURL returns the generateContent URL with the key as query parameter
func (c *GeminiClient) requestURL() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.endpoint, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

// redactKey removes the credential from a URL before it is logged or shown
func (c *GeminiClient) redactKey(s string) string {
	if c.apiKey == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.QueryEscape(c.apiKey), "REDACTED")
	return strings.ReplaceAll(s, c.apiKey, "REDACTED")
}

// Generate sends one request to the Gemini API and extracts the result
func (c *GeminiClient) Generate(ctx context.Context, op Operation, body string) (*GenerateResult, error) {
	payload, err := json.Marshal(BuildGeminiRequest(op, body))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %s", ErrRequest, c.redactKey(err.Error()))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending generateContent request",
		zap.String("op", string(op)),
		zap.String("model", c.model),
		zap.String("url", c.redactKey(httpReq.URL.String())),
		zap.Int("request_bytes", len(payload)),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.redactKey(urlErr.URL)
		}
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: API error (status %d): %s", ErrRequest, resp.StatusCode, truncate(string(respBody), 512))
	}

	envelope, err := decodeEnvelope(respBody)
	if err != nil {
		return nil, err
	}
	text, err := envelope.FirstText()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("received generateContent response",
		zap.Int("status", resp.StatusCode),
		zap.Int("input_tokens", envelope.UsageMetadata.PromptTokenCount),
		zap.Int("output_tokens", envelope.UsageMetadata.CandidatesTokenCount),
	)

	result, err := finalizeText(op, text)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Text:         result,
		InputTokens:  envelope.UsageMetadata.PromptTokenCount,
		OutputTokens: envelope.UsageMetadata.CandidatesTokenCount,
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
