package imagegen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// PexelsClient finds a landscape stock photo when generation fails.
type PexelsClient struct {
	apiKey    string
	searchURL string
	saveDir   string
	client    *http.Client
}

// NewPexelsClient wires the fallback photo search.
func NewPexelsClient(apiKey, saveDir string) *PexelsClient {
	return &PexelsClient{
		apiKey:    apiKey,
		searchURL: "https://api.pexels.com/v1/search",
		saveDir:   saveDir,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type pexelsResponse struct {
	Photos []struct {
		Src struct {
			Landscape string `json:"landscape"`
			Large     string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

// Fetch searches for one landscape photo matching query and downloads it
// to the asset directory under filename.
func (c *PexelsClient) Fetch(ctx context.Context, query, filename string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("pexels api key is not configured")
	}

	endpoint := fmt.Sprintf("%s?query=%s&per_page=1&orientation=landscape",
		c.searchURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pexels search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels error: %s", resp.Status)
	}

	var parsed pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode pexels response: %w", err)
	}
	if len(parsed.Photos) == 0 {
		return "", fmt.Errorf("no pexels photos for %q", query)
	}

	photoURL := parsed.Photos[0].Src.Landscape
	if photoURL == "" {
		photoURL = parsed.Photos[0].Src.Large
	}
	if photoURL == "" {
		return "", fmt.Errorf("pexels photo has no usable source url")
	}

	return c.download(ctx, photoURL, filename)
}

func (c *PexelsClient) download(ctx context.Context, photoURL, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download photo: %s", resp.Status)
	}

	if err := os.MkdirAll(c.saveDir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	path := filepath.Join(c.saveDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}

	return path, nil
}
