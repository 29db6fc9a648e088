package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// ImagenClient calls the Imagen predict endpoint and saves the returned
// image bytes to the local asset directory.
type ImagenClient struct {
	endpoint string
	apiKey   string
	saveDir  string
	client   *http.Client
}

// NewImagenClient wires the REST client; the endpoint is the full
// models/...:predict URL without the key parameter.
func NewImagenClient(endpoint, apiKey, saveDir string) *ImagenClient {
	return &ImagenClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		saveDir:  saveDir,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio"`
}

type imagenResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// Generate runs one prediction and returns the saved asset path.
func (c *ImagenClient) Generate(ctx context.Context, prompt, filename string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("imagen api key is not configured")
	}

	body, err := json.Marshal(imagenRequest{
		Instances:  []imagenInstance{{Prompt: prompt}},
		Parameters: imagenParameters{SampleCount: 1, AspectRatio: "16:9"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal imagen request: %w", err)
	}

	endpoint := c.endpoint + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("imagen request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("imagen error %s: %s", resp.Status, detail)
	}

	var parsed imagenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode imagen response: %w", err)
	}
	if len(parsed.Predictions) == 0 || parsed.Predictions[0].BytesBase64Encoded == "" {
		return "", fmt.Errorf("no image data in imagen response")
	}

	raw, err := base64.StdEncoding.DecodeString(parsed.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return "", fmt.Errorf("decode image bytes: %w", err)
	}

	if err := os.MkdirAll(c.saveDir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	path := filepath.Join(c.saveDir, filename)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	return path, nil
}
