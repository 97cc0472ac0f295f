package plate

import (
	"context"
	"image"
)

// Detection is a single license-plate bounding box in pixel coordinates with
// the model's confidence score.
type Detection struct {
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
	Confidence float64 `json:"confidence"`
}

// Detector is the opaque model collaborator: given a frame it returns every
// candidate box it found, unfiltered. Confidence thresholding is the
// caller's job.
type Detector interface {
	Predict(ctx context.Context, img image.Image) ([]Detection, error)

	// Healthy reports whether the model backend is reachable and loaded.
	Healthy(ctx context.Context) bool
}
