package objectstore

import (
	"context"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"stocknews/internal/config"
	"stocknews/internal/ports"
)

const maxSlugLen = 50

var slugExpr = regexp.MustCompile(`[^a-zA-Z0-9]+`)

const defaultUploadTimeout = 30 * time.Second

// S3Uploader pushes local image assets to an S3 bucket. Each PutObject
// carries its own deadline.
type S3Uploader struct {
	client  *s3.Client
	bucket  string
	region  string
	prefix  string
	timeout time.Duration
}

var _ ports.ObjectUploader = (*S3Uploader)(nil)

// NewS3Uploader builds the uploader with static credentials from
// configuration.
func NewS3Uploader(ctx context.Context, cfg config.S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("s3 bucket and region must be configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}

	return &S3Uploader{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		prefix:  cfg.KeyPrefix,
		timeout: timeout,
	}, nil
}

// Upload stores the local asset under key and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, localPath, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open asset: %w", err)
	}
	defer f.Close()

	fullKey := key
	if u.prefix != "" {
		fullKey = path.Join(u.prefix, key)
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(fullKey),
		Body:        f,
		ContentType: aws.String(contentTypeFor(localPath)),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", fullKey, err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, fullKey), nil
}

// ObjectKey derives a unique, url-safe key for one article's image.
func ObjectKey(title string, now time.Time) string {
	slug := strings.Trim(slugExpr.ReplaceAllString(title, "-"), "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return fmt.Sprintf("%d-%s.jpg", now.UnixMilli(), slug)
}

func contentTypeFor(localPath string) string {
	if strings.HasSuffix(strings.ToLower(localPath), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
