package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

const (
	// DefaultBedrockModel is the inference profile used when none is configured
	DefaultBedrockModel = "global.anthropic.claude-sonnet-4-5-20250929-v1:0"
	// DefaultBedrockRegion is used when AWS_REGION is unset
	DefaultBedrockRegion = "us-east-1"
)

// Ensure BedrockClient implements LLMProvider
var _ LLMProvider = (*BedrockClient)(nil)

// bedrockInvoker is the subset of the Bedrock Runtime client used here
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient implements LLMProvider for Anthropic models on AWS Bedrock
type BedrockClient struct {
	client bedrockInvoker
	model  string
	logger *zap.Logger
}

// Message represents a conversation message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClaudeRequest represents the request body for Claude models
type ClaudeRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Messages         []Message `json:"messages"`
	System           string    `json:"system,omitempty"`
	Temperature      float64   `json:"temperature"`
	TopK             int       `json:"top_k"`
	TopP             float64   `json:"top_p"`
}

// ClaudeResponse represents the response from Claude models
type ClaudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewBedrockProvider creates a BedrockClient as an LLMProvider. Credentials
// come from the default AWS chain.
func NewBedrockProvider(ctx context.Context, cfg *ProviderConfig) (LLMProvider, error) {
	region := cfg.Region
	if region == "" {
		region = getEnvOrDefault("AWS_REGION", DefaultBedrockRegion)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, ErrAWSConfig(err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = RequestTimeout
	}
	client := bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
		o.HTTPClient = awshttp.NewBuildableClient().WithTimeout(timeout)
	})

	return newBedrockClient(client, cfg.Model, cfg.Logger), nil
}

func newBedrockClient(client bedrockInvoker, model string, logger *zap.Logger) *BedrockClient {
	if model == "" {
		model = DefaultBedrockModel
	}
	return &BedrockClient{
		client: client,
		model:  model,
		logger: loggerOrNop(logger),
	}
}

// Name returns the provider name
func (b *BedrockClient) Name() string {
	return "AWS Bedrock"
}

// Model returns the model ID
func (b *BedrockClient) Model() string {
	return b.model
}

// bedrockSystemPrompt appends the response schema to the template, since
// InvokeModel has no structured-output parameter.
func bedrockSystemPrompt(op Operation) (string, error) {
	system := SystemPromptFor(op)
	schema := ResponseSchemaFor(op)
	if schema == nil {
		return system, nil
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response schema: %w", err)
	}
	return system + "\n\n## Response Format\n\nRespond with only a JSON object matching this schema, with no surrounding text:\n" + string(data), nil
}

// BuildClaudeRequest assembles the InvokeModel body for an operation
func BuildClaudeRequest(op Operation, body string) (ClaudeRequest, error) {
	system, err := bedrockSystemPrompt(op)
	if err != nil {
		return ClaudeRequest{}, err
	}
	return ClaudeRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        MaxOutputTokens,
		Messages:         []Message{{Role: "user", Content: BuildUserPrompt(op, body)}},
		System:           system,
		Temperature:      SamplingTemperature,
		TopK:             SamplingTopK,
		TopP:             SamplingTopP,
	}, nil
}

// Generate invokes the model once and extracts the result
func (b *BedrockClient) Generate(ctx context.Context, op Operation, body string) (*GenerateResult, error) {
	request, err := BuildClaudeRequest(op, body)
	if err != nil {
		return nil, err
	}
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	b.logger.Debug("invoking bedrock model",
		zap.String("op", string(op)),
		zap.String("model", b.model),
		zap.Int("request_bytes", len(requestBody)),
	)

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.model),
		Body:        requestBody,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return nil, ErrBedrockInvoke(err)
	}

	var response ClaudeResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	var text strings.Builder
	found := false
	for _, content := range response.Content {
		if content.Type == "text" {
			text.WriteString(content.Text)
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: missing text in response (stop_reason: %s)", ErrInvalidResponse, response.StopReason)
	}

	raw := text.String()
	if op.Shape() != ShapeText {
		raw = stripJSONFence(raw)
	}

	result, err := finalizeText(op, raw)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Text:         result,
		InputTokens:  response.Usage.InputTokens,
		OutputTokens: response.Usage.OutputTokens,
	}, nil
}

var jsonFencePattern = regexp.MustCompile("(?s)^```(?:json)?[ \t]*\n(.*?)\n?```$")

// stripJSONFence removes a markdown code fence wrapped around a JSON reply
func stripJSONFence(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if matches := jsonFencePattern.FindStringSubmatch(text); len(matches) >= 2 {
		return strings.TrimSpace(matches[1])
	}
	return text
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
