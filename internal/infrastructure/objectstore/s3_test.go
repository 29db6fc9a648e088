package objectstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"stocknews/internal/config"
)

func TestObjectKey(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000000)

	key := ObjectKey("Sensex surges 500 points; Nifty above 24,000!", now)
	if !strings.HasPrefix(key, "1700000000000-") {
		t.Fatalf("key must start with the millisecond timestamp: %q", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("key must end with .jpg: %q", key)
	}
	slug := strings.TrimSuffix(strings.TrimPrefix(key, "1700000000000-"), ".jpg")
	if strings.ContainsAny(slug, " ;,!") {
		t.Fatalf("slug must be url-safe: %q", slug)
	}
	if slug != "Sensex-surges-500-points-Nifty-above-24-000" {
		t.Fatalf("unexpected slug: %q", slug)
	}
}

func TestObjectKeyTruncatesLongTitles(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("markets ", 20)
	key := ObjectKey(long, time.UnixMilli(1))

	slug := strings.TrimSuffix(strings.TrimPrefix(key, "1-"), ".jpg")
	if len(slug) > maxSlugLen {
		t.Fatalf("slug exceeds %d chars: %d", maxSlugLen, len(slug))
	}
}

func TestObjectKeyTrimsEdgeDashes(t *testing.T) {
	t.Parallel()

	key := ObjectKey("  (Exclusive) RBI update  ", time.UnixMilli(1))
	slug := strings.TrimSuffix(strings.TrimPrefix(key, "1-"), ".jpg")
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		t.Fatalf("slug must not carry edge dashes: %q", slug)
	}
}

func TestNewS3UploaderBindsUploadTimeout(t *testing.T) {
	t.Parallel()

	u, err := NewS3Uploader(context.Background(), config.S3Config{
		Bucket:        "news-bucket",
		Region:        "ap-south-1",
		UploadTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewS3Uploader error: %v", err)
	}
	if u.timeout != 5*time.Second {
		t.Fatalf("configured timeout not applied: %v", u.timeout)
	}

	u, err = NewS3Uploader(context.Background(), config.S3Config{
		Bucket: "news-bucket",
		Region: "ap-south-1",
	})
	if err != nil {
		t.Fatalf("NewS3Uploader error: %v", err)
	}
	if u.timeout != defaultUploadTimeout {
		t.Fatalf("expected default timeout %v, got %v", defaultUploadTimeout, u.timeout)
	}
}

func TestContentTypeFor(t *testing.T) {
	t.Parallel()

	if contentTypeFor("/tmp/article_x.png") != "image/png" {
		t.Fatalf("png extension must map to image/png")
	}
	if contentTypeFor("/tmp/article_x_wm.jpg") != "image/jpeg" {
		t.Fatalf("jpg extension must map to image/jpeg")
	}
}
