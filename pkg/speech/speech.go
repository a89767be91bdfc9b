// Package speech synthesizes narration audio via the OpenAI speech API.
package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultModel = "tts-1"
	DefaultVoice = "alloy"
)

type Synthesizer struct {
	api     openai.Client
	model   string
	options []option.RequestOption
}

type Option func(*Synthesizer)

func WithAPIKey(apiKey string) Option {
	return func(s *Synthesizer) {
		s.options = append(s.options, option.WithAPIKey(apiKey))
	}
}

func WithEndpoint(endpoint string) Option {
	return func(s *Synthesizer) {
		s.options = append(s.options, option.WithBaseURL(endpoint))
	}
}

func WithModel(model string) Option {
	return func(s *Synthesizer) {
		s.model = model
	}
}

func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{model: DefaultModel}
	for _, opt := range opts {
		opt(s)
	}
	s.api = openai.NewClient(s.options...)
	return s
}

// Synthesize converts text to MP3 audio bytes using the given voice.
// An empty voice falls back to the default.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = DefaultVoice
	}

	resp, err := s.api.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}
	return audio, nil
}
