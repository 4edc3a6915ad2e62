// Package enricher provides AI-powered product enrichment.
package enricher

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopworks/catalogsync/infrastructure/provider"
)

const (
	systemPrompt = "You write product copy for an online storefront. " +
		"Respond with exactly one line and no surrounding quotes."

	promptTemplate = "Product: %s. Category: %s. " +
		"Write one short, catchy line promoting this product."
)

// Describer generates one-line product descriptions.
type Describer struct {
	generator   provider.TextGenerator
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// NewDescriber creates a new Describer.
func NewDescriber(generator provider.TextGenerator, logger *slog.Logger) *Describer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Describer{
		generator:   generator,
		maxTokens:   128,
		temperature: 0.7,
		logger:      logger,
	}
}

// WithMaxTokens sets the maximum tokens for generation.
func (d *Describer) WithMaxTokens(n int) *Describer {
	d.maxTokens = n
	return d
}

// WithTemperature sets the temperature for generation.
func (d *Describer) WithTemperature(t float64) *Describer {
	d.temperature = t
	return d
}

// Describe generates a one-line description for a product.
func (d *Describer) Describe(ctx context.Context, name, category string) (string, error) {
	req := provider.NewChatCompletionRequest([]provider.Message{
		provider.SystemMessage(systemPrompt),
		provider.UserMessage(fmt.Sprintf(promptTemplate, name, category)),
	}).
		WithMaxTokens(d.maxTokens).
		WithTemperature(d.temperature)

	resp, err := d.generator.ChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("describe %s: %w", name, err)
	}

	description := firstLine(resp.Content())
	if description == "" {
		return "", fmt.Errorf("describe %s: empty completion", name)
	}
	return description, nil
}

// firstLine trims the completion to a single line. Models occasionally
// ignore the one-line instruction and ramble.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// Document builds the text a product's embedding is produced from.
func Document(name, category, description string) string {
	return strings.Join([]string{name, category, description}, "\n")
}
