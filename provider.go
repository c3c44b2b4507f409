package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Sampling parameters shared by every request
const (
	SamplingTemperature = 1.0
	SamplingTopK        = 40
	SamplingTopP        = 0.95
	MaxOutputTokens     = 8192

	// RequestTimeout bounds the single call made per invocation
	RequestTimeout = 60 * time.Second
)

// Operation identifies what a request asks the model to do
type Operation string

const (
	OpPlan  Operation = "plan"
	OpCheck Operation = "check"
	OpPerf  Operation = "perf"
	OpDocs  Operation = "docs"
	OpTests Operation = "tests"
)

// ResponseShape describes what the model is constrained to emit
type ResponseShape int

const (
	ShapeText     ResponseShape = iota // unconstrained markdown/text
	ShapeFindings                      // {"list": ["...", ...]}
	ShapeMutation                      // {"<field>": "..."}
)

// Shape returns the response shape requested for the operation
func (op Operation) Shape() ResponseShape {
	switch op {
	case OpCheck, OpPerf:
		return ShapeFindings
	case OpDocs, OpTests:
		return ShapeMutation
	default:
		return ShapeText
	}
}

// Field returns the JSON field holding the payload of a structured response
func (op Operation) Field() string {
	switch op {
	case OpCheck, OpPerf:
		return "list"
	case OpDocs:
		return "code"
	case OpTests:
		return "tests"
	default:
		return ""
	}
}

// Objective is the sentence prepended to code contents for non-plan operations
func (op Operation) Objective() string {
	switch op {
	case OpCheck:
		return "Check this code for potential bugs and security issues"
	case OpPerf:
		return "Check this code for performance improvements"
	case OpDocs:
		return "Add documentation to this code"
	case OpTests:
		return "Write unit tests for this code"
	default:
		return ""
	}
}

// BuildUserPrompt builds the user turn of a request. Plan bodies are sent
// as-is; every other operation gets its objective sentence in front.
func BuildUserPrompt(op Operation, body string) string {
	objective := op.Objective()
	if objective == "" {
		return body
	}
	return objective + "\n\n" + strings.TrimLeft(body, "\n")
}

// GenerateResult contains the response text and token usage
type GenerateResult struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// LLMProvider is the abstract interface for text-generation backends
type LLMProvider interface {
	// Generate sends one request for op and returns the extracted result.
	// Plan results are the raw text, findings results a JSON array of
	// strings, mutation results the replacement text.
	Generate(ctx context.Context, op Operation, body string) (*GenerateResult, error)

	// Name returns the provider name for display
	Name() string

	// Model returns the model ID requests are sent to
	Model() string
}

// ProviderType represents the LLM provider
type ProviderType string

const (
	ProviderGemini  ProviderType = "gemini"
	ProviderBedrock ProviderType = "bedrock"
)

// ProviderConfig holds configuration for initializing providers
type ProviderConfig struct {
	Provider ProviderType
	APIKey   string // For Gemini
	Region   string // For Bedrock
	Model    string
	Endpoint string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewProvider creates an LLM provider based on configuration
func NewProvider(ctx context.Context, cfg *ProviderConfig) (LLMProvider, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiProvider(cfg)
	case ProviderBedrock:
		return NewBedrockProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// ParseProviderType converts a string to ProviderType
func ParseProviderType(s string) (ProviderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "gemini", "google":
		return ProviderGemini, nil
	case "bedrock", "aws":
		return ProviderBedrock, nil
	default:
		return "", fmt.Errorf("unknown provider: %s", s)
	}
}

// finalizeText applies the inner decoding step for structured operations.
func finalizeText(op Operation, text string) (string, error) {
	switch op.Shape() {
	case ShapeFindings:
		findings, err := DecodeFindings(text)
		if err != nil {
			return "", err
		}
		return FormatFindings(findings)
	case ShapeMutation:
		return DecodeMutation(text, op.Field())
	default:
		return text, nil
	}
}

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
