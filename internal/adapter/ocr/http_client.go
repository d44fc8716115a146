package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// HTTPRecognizer posts page images to an OCR service and reads back {"text": "..."}.
type HTTPRecognizer struct {
	BaseURL    string
	Language   string
	HTTPClient *http.Client
}

type ocrResponse struct {
	Text string `json:"text"`
}

// NewHTTPRecognizer creates a client for the OCR service at baseURL.
func NewHTTPRecognizer(baseURL, language string, timeout time.Duration) *HTTPRecognizer {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &HTTPRecognizer{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Language:   language,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Recognize implements domain.Recognizer.
func (c *HTTPRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "page.png")
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("failed to write image content: %w", err)
	}
	if c.Language != "" {
		if err := writer.WriteField("lang", c.Language); err != nil {
			return "", fmt.Errorf("failed to write lang field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/ocr/image", body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var out ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Text, nil
}

// HealthCheck checks that the OCR service answers on /health.
func (c *HTTPRecognizer) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OCR service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
