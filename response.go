package main

import (
	"encoding/json"
	"fmt"
)

// GeminiResponse represents a response from the Gemini API
type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
			Role string `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// decodeEnvelope parses the outer response body
func decodeEnvelope(body []byte) (*GeminiResponse, error) {
	var resp GeminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return &resp, nil
}

// FirstText returns candidates[0].content.parts[0].text
func (r *GeminiResponse) FirstText() (string, error) {
	if len(r.Candidates) == 0 {
		return "", fmt.Errorf("%w: missing text in response (no candidates)", ErrInvalidResponse)
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", fmt.Errorf("%w: missing text in response (finish_reason: %s)",
			ErrInvalidResponse, r.Candidates[0].FinishReason)
	}
	return *parts[0].Text, nil
}

// ExtractEnvelopeText is the outer parsing step: response body to text.
func ExtractEnvelopeText(body []byte) (string, error) {
	resp, err := decodeEnvelope(body)
	if err != nil {
		return "", err
	}
	return resp.FirstText()
}

// decodePayloadField is the inner parsing step: the envelope text is itself
// a JSON object, from which one field is pulled out.
func decodePayloadField(text, field string, out any) error {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	raw, ok := payload[field]
	if !ok || string(raw) == "null" {
		return fmt.Errorf("%w: missing field %q", ErrMalformedPayload, field)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: field %q: %w", ErrMalformedPayload, field, err)
	}
	return nil
}

// DecodeFindings pulls the "list" array of strings out of a findings payload
func DecodeFindings(text string) ([]string, error) {
	findings := []string{}
	if err := decodePayloadField(text, "list", &findings); err != nil {
		return nil, err
	}
	return findings, nil
}

// DecodeMutation pulls a single string field out of a mutation payload
func DecodeMutation(text, field string) (string, error) {
	var value string
	if err := decodePayloadField(text, field, &value); err != nil {
		return "", err
	}
	return value, nil
}

// FormatFindings pretty-prints findings as a standalone JSON array
func FormatFindings(findings []string) (string, error) {
	if findings == nil {
		findings = []string{}
	}
	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return string(data), nil
}

// ParseFindings re-parses the array produced by FormatFindings
func ParseFindings(report string) ([]string, error) {
	var findings []string
	if err := json.Unmarshal([]byte(report), &findings); err != nil {
		return nil, fmt.Errorf("%w: error parsing findings JSON: %w", ErrInvalidResponse, err)
	}
	if findings == nil {
		findings = []string{}
	}
	return findings, nil
}
