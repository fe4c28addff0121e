// Package report talks to the multimodal generation service and extracts
// the structured pieces from its free-form output.
package report

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrGeneration covers any failure of the generation service, including a
// response with no choices.
var ErrGeneration = errors.New("report: generation failed")

// Generator produces a weather report from a prompt and webcam image URLs
// via one chat completion.
type Generator struct {
	logger *zap.Logger
	client *openai.Client
	model  string
}

// NewGenerator creates a Generator around an already-configured API client.
func NewGenerator(logger *zap.Logger, client *openai.Client, model string) *Generator {
	return &Generator{
		logger: logger,
		client: client,
		model:  model,
	}
}

// Generate sends the prompt plus the image URLs as a single user message
// and returns the raw generated text.
func (g *Generator) Generate(ctx context.Context, prompt string, imageURLs []string) (string, error) {
	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: prompt},
	}
	for _, u := range imageURLs {
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: u},
		})
	}

	g.logger.Debug("requesting report",
		zap.String("model", g.model),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("images", len(imageURLs)),
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrGeneration)
	}

	return resp.Choices[0].Message.Content, nil
}
