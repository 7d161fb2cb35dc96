package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lehigh-university-libraries/phototools/internal/gemini"
	"github.com/lehigh-university-libraries/phototools/internal/models"
	"github.com/lehigh-university-libraries/phototools/internal/ollama"
	"github.com/lehigh-university-libraries/phototools/internal/openai"
	"github.com/lehigh-university-libraries/phototools/internal/providers"
)

// Service asks a vision model for a title, description and tags
type Service struct {
	Provider    providers.Provider
	Model       string
	Temperature float64
	Categories  models.CategorySet
}

// NewProvider returns the provider registered under name
func NewProvider(name string) (providers.Provider, error) {
	switch name {
	case "ollama":
		return ollama.New(), nil
	case "openai":
		return openai.New(), nil
	case "gemini":
		return gemini.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// DefaultModel returns the model used when none is configured
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	default:
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "llama3.2-vision"
	}
}

// New builds a Service for the named provider
func New(provider, model string, temperature float64, categories models.CategorySet) (*Service, error) {
	p, err := NewProvider(provider)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = DefaultModel(provider)
	}
	return &Service{
		Provider:    p,
		Model:       model,
		Temperature: temperature,
		Categories:  categories,
	}, nil
}

// Suggest returns form values proposed for the image at imagePath. Season
// and featured are left empty.
func (s *Service) Suggest(ctx context.Context, imagePath string) (models.Form, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return models.Form{}, fmt.Errorf("failed to read image: %w", err)
	}

	response, err := s.Provider.Generate(ctx, providers.Config{
		Model:       s.Model,
		Temperature: s.Temperature,
		Prompt:      s.Prompt(),
		Image:       data,
		MimeType:    providers.MimeType(imagePath, data),
	})
	if err != nil {
		return models.Form{}, fmt.Errorf("failed to get suggestion: %w", err)
	}

	form, err := ParseResponse(response, s.Categories)
	if err != nil {
		return models.Form{}, err
	}
	slog.Debug("Received suggestion", "image", imagePath, "title", form.Title, "categories", form.Categories)
	return form, nil
}

// Prompt lists the allowed category keys and the expected JSON shape
func (s *Service) Prompt() string {
	keys := make([]string, 0, s.Categories.Len())
	for _, c := range s.Categories.All() {
		keys = append(keys, c.Key)
	}

	return fmt.Sprintf(`You are helping a photographer catalog a portfolio image.

Look at the photograph and propose:
- a short title (at most six words)
- a one or two sentence description of what is shown
- zero or more tags chosen only from this list: %s

Respond with a single JSON object and nothing else:
{"title": "...", "description": "...", "tags": ["..."]}`, strings.Join(keys, ", "))
}

type suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ParseResponse decodes the model's JSON answer. Markdown code fences are
// tolerated and tags outside the category set are dropped.
func ParseResponse(response string, categories models.CategorySet) (models.Form, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var s suggestion
	if err := json.Unmarshal([]byte(response), &s); err != nil {
		return models.Form{}, fmt.Errorf("failed to parse suggestion: %w", err)
	}

	tags := make([]string, 0, len(s.Tags))
	for _, tag := range s.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
	}

	return models.Form{
		Title:       strings.TrimSpace(s.Title),
		Description: strings.TrimSpace(s.Description),
		Categories:  categories.FormatIndices(tags),
	}, nil
}

// Apply overlays the non-empty suggested fields on current
func Apply(current, suggested models.Form) models.Form {
	if suggested.Title != "" {
		current.Title = suggested.Title
	}
	if suggested.Description != "" {
		current.Description = suggested.Description
	}
	if suggested.Categories != "" {
		current.Categories = suggested.Categories
	}
	return current
}
