package detector

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"time"

	"github.com/halitkalayci/gyk-backend/internal/domain/plate"
)

// HTTPDetector talks to a model inference sidecar over HTTP. The frame goes
// out base64-encoded; the sidecar answers with raw candidate boxes. The
// model itself stays a black box behind this adapter.
type HTTPDetector struct {
	baseURL string
	client  *http.Client
}

func NewHTTPDetector(baseURL string, timeout time.Duration) *HTTPDetector {
	return &HTTPDetector{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Image string `json:"image"`
}

type predictResponse struct {
	Detections []plate.Detection `json:"detections"`
}

func (d *HTTPDetector) Predict(ctx context.Context, img image.Image) ([]plate.Detection, error) {
	var frame bytes.Buffer
	if err := jpeg.Encode(&frame, img, nil); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	body, err := json.Marshal(predictRequest{
		Image: base64.StdEncoding.EncodeToString(frame.Bytes()),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	return out.Detections, nil
}

func (d *HTTPDetector) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
