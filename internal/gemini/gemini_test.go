package gemini

import (
	"context"
	"testing"

	"github.com/lehigh-university-libraries/phototools/internal/providers"
)

func TestImageFormat(t *testing.T) {
	tests := map[string]string{
		"image/png":  "png",
		"image/jpeg": "jpeg",
		"image/":     "jpeg",
		"text/plain": "jpeg",
	}
	for in, want := range tests {
		if got := imageFormat(in); got != want {
			t.Errorf("imageFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateRequiresKey(t *testing.T) {
	g := &Gemini{}
	if _, err := g.Generate(context.Background(), providers.Config{Prompt: "x"}); err == nil {
		t.Error("expected an error without an API key")
	}
}
