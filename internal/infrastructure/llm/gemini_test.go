package llm

import (
	"context"
	"testing"
	"time"

	"stocknews/internal/config"
)

func TestNewClientBindsCallTimeout(t *testing.T) {
	t.Parallel()

	c, err := NewClient(context.Background(), config.GeminiConfig{
		APIKey:       "test-key",
		ContentModel: "gemini-2.5-flash",
		Timeout:      5 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer c.Close()

	if c.timeout != 5*time.Second {
		t.Fatalf("configured timeout not applied: %v", c.timeout)
	}
}

func TestNewClientDefaultsCallTimeout(t *testing.T) {
	t.Parallel()

	c, err := NewClient(context.Background(), config.GeminiConfig{APIKey: "test-key"}, nil)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer c.Close()

	if c.timeout != defaultCallTimeout {
		t.Fatalf("expected default timeout %v, got %v", defaultCallTimeout, c.timeout)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(context.Background(), config.GeminiConfig{}, nil); err == nil {
		t.Fatalf("expected error without api key")
	}
}
