package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Client talks to the text-prompted segmentation service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		// Segmentation of a full area raster can take minutes on CPU.
		httpClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

// CheckHealth verifies the segmentation service is up and its model weights
// are loaded.
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("segmentation service unhealthy: %d", resp.StatusCode)
	}
	return nil
}

// Predict uploads the raster and runs one text prompt against it. Masks come
// back in pixel coordinates of the uploaded image.
func (c *Client) Predict(ctx context.Context, imagePath, prompt string, boxThreshold, textThreshold float64) ([]Mask, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open raster: %w", err)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy raster: %w", err)
	}
	writer.WriteField("prompt", prompt)
	writer.WriteField("box_threshold", strconv.FormatFloat(boxThreshold, 'f', -1, 64))
	writer.WriteField("text_threshold", strconv.FormatFloat(textThreshold, 'f', -1, 64))
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/segment", body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("segmentation failed with status: %d", resp.StatusCode)
	}

	var result segmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result.Masks, nil
}
