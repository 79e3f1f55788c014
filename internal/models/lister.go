package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/mwlookup/internal/audio"
)

// Lister prints the text-to-speech models and voices the fallback can use
type Lister struct {
	apiKey string
	client *openai.Client
	out    io.Writer
}

// NewLister creates a new model lister writing to out
func NewLister(config *audio.Config, out io.Writer) *Lister {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &Lister{
		apiKey: config.OpenAIKey,
		client: openai.NewClientWithConfig(clientConfig),
		out:    out,
	}
}

// ListAvailableModels prints the espeak-ng voices and, when an API key is
// configured, the OpenAI speech models and voices
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	fmt.Fprintln(l.out, "espeak-ng Voices:")
	for _, voice := range audio.ListVoices() {
		fmt.Fprintf(l.out, "  %s\n", voice)
	}

	if l.apiKey == "" {
		fmt.Fprintln(l.out, "\nOpenAI: no API key. Set OPENAI_API_KEY or audio.openai_key in .mwlookup.yaml")
		return nil
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	fmt.Fprintln(l.out, "\nOpenAI Text-to-Speech Models:")
	ttsModels := speechModels(models.Models)
	if len(ttsModels) == 0 {
		fmt.Fprintln(l.out, "  No TTS models found")
	}
	for _, model := range ttsModels {
		fmt.Fprintf(l.out, "  %s\n", model)
	}

	fmt.Fprintln(l.out, "\nOpenAI Voices:")
	fmt.Fprintf(l.out, "  %s\n", strings.Join(audio.OpenAIVoices, ", "))
	return nil
}

// speechModels returns the sorted IDs of the models that produce speech
func speechModels(models []openai.Model) []string {
	var ids []string
	for _, model := range models {
		if strings.Contains(model.ID, "tts") {
			ids = append(ids, model.ID)
		}
	}
	sort.Strings(ids)
	return ids
}
