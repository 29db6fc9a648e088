package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Scheduler.CronExpression != "0 8,18 * * *" {
		t.Fatalf("unexpected default cron: %q", cfg.Scheduler.CronExpression)
	}
	if cfg.Scheduler.Timezone != "Asia/Kolkata" {
		t.Fatalf("unexpected default timezone: %q", cfg.Scheduler.Timezone)
	}
	if cfg.Selection.TopK != 1 {
		t.Fatalf("unexpected default topK: %d", cfg.Selection.TopK)
	}
	if len(cfg.Scrape.EnabledSources) == 0 {
		t.Fatalf("expected default enabled sources")
	}
	if cfg.Scrape.Timeout != 10*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.Scrape.Timeout)
	}
	if cfg.Gemini.Timeout != 60*time.Second {
		t.Fatalf("unexpected default gemini timeout: %v", cfg.Gemini.Timeout)
	}
	if cfg.S3.UploadTimeout != 30*time.Second {
		t.Fatalf("unexpected default upload timeout: %v", cfg.S3.UploadTimeout)
	}
}

func TestS3FileOverrideKeepsTimeoutDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
s3:
  bucket: news-bucket
  region: ap-south-1
  accessKey: ak
  secretKey: sk
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("STOCKNEWS_CONFIG", path)

	cfg := Load()

	if cfg.S3.Bucket != "news-bucket" || cfg.S3.Region != "ap-south-1" {
		t.Fatalf("file override not applied: %+v", cfg.S3)
	}
	if cfg.S3.UploadTimeout != 30*time.Second {
		t.Fatalf("default upload timeout lost: %v", cfg.S3.UploadTimeout)
	}
	if cfg.S3.KeyPrefix != "news-images" {
		t.Fatalf("default key prefix lost: %q", cfg.S3.KeyPrefix)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("FALLBACK_IMAGE", "https://cdn.example.com/fallback.jpg")

	cfg := Load()

	if cfg.Server.Addr != ":9999" {
		t.Fatalf("HTTP_ADDR override not applied: %q", cfg.Server.Addr)
	}
	if cfg.Gemini.APIKey != "test-key" {
		t.Fatalf("GEMINI_API_KEY override not applied")
	}
	if cfg.Images.FallbackImage != "https://cdn.example.com/fallback.jpg" {
		t.Fatalf("FALLBACK_IMAGE override not applied")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
scheduler:
  cronExpression: "30 9 * * *"
selection:
  topK: 3
scrape:
  enabledSources: [moneycontrol, etmarkets-rss]
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("STOCKNEWS_CONFIG", path)

	cfg := Load()

	if cfg.Scheduler.CronExpression != "30 9 * * *" {
		t.Fatalf("file override not applied: %q", cfg.Scheduler.CronExpression)
	}
	if cfg.Selection.TopK != 3 {
		t.Fatalf("file override not applied: %d", cfg.Selection.TopK)
	}
	if len(cfg.Scrape.EnabledSources) != 2 {
		t.Fatalf("file override not applied: %v", cfg.Scrape.EnabledSources)
	}
	// Untouched sections keep defaults.
	if cfg.Scheduler.Timezone != "Asia/Kolkata" {
		t.Fatalf("default timezone lost: %q", cfg.Scheduler.Timezone)
	}
}

func TestSchedulerLocation(t *testing.T) {
	cfg := Load()
	loc := cfg.Scheduler.Location()
	if loc == nil || loc.String() != "Asia/Kolkata" {
		t.Fatalf("unexpected location: %v", loc)
	}
}
