package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var ErrEmptyTranscript = errors.New("nothing recognised")

// Transcriber converts a WAV recording to text.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiTranscriber asks a Gemini model for a verbatim transcript.
type GeminiTranscriber struct {
	models   contentGenerator
	model    string
	language string
}

func NewGeminiTranscriber(ctx context.Context, apiKey, model, language string) (*GeminiTranscriber, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if language == "" {
		language = "ru-RU"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiTranscriber{models: client.Models, model: model, language: language}, nil
}

func (t *GeminiTranscriber) prompt() string {
	return fmt.Sprintf("Transcribe this recording verbatim. The speech is in %s. "+
		"Reply with the transcript only, without quotes or commentary.", t.language)
}

func (t *GeminiTranscriber) Transcribe(ctx context.Context, wav []byte) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(t.prompt()),
			genai.NewPartFromBytes(wav, "audio/wav"),
		}, genai.RoleUser),
	}

	resp, err := t.models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyTranscript
	}
	return text, nil
}
