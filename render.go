package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// previewWidth is the word-wrap column for rendered plans
const previewWidth = 100

// RenderMarkdown renders markdown for the terminal
func RenderMarkdown(text string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(text)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
