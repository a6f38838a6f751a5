// Package gemini invokes the Gemini vision model for product extraction.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/semjacko/product-harvester/internal/platform/models"
)

// Extractor sends prepared image inputs to a Gemini model and returns
// the raw text it generates.
type Extractor struct {
	client *genai.Client
	model  string
}

// NewExtractor returns new Extractor using provided Gemini client.
func NewExtractor(client *genai.Client, model string) *Extractor {
	return &Extractor{
		client: client,
		model:  model,
	}
}

// Extract invokes the model with the image and prompt of provided
// input. Temperature is pinned to zero so repeated extractions of the
// same image stay stable.
func (e *Extractor) Extract(ctx context.Context, input models.ExtractionInput) (string, error) {
	model := e.client.GenerativeModel(e.model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(
		ctx,
		genai.ImageData(imageFormat(input.MIMEType), input.Data),
		genai.Text(input.Prompt),
	)
	if err != nil {
		return "", fmt.Errorf("can't generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrEmptyContent
	}

	text, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return "", ErrUnexpectedResponse
	}

	return string(text), nil
}

// imageFormat maps a MIME type to the image format Gemini expects.
func imageFormat(mimeType string) string {
	return strings.TrimPrefix(mimeType, "image/")
}
