package plate

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/halitkalayci/gyk-backend/internal/domain/apperrors"
	"github.com/halitkalayci/gyk-backend/internal/domain/plate"
)

var boxColor = color.RGBA{R: 255, A: 255}

// Service runs frames through the detector, keeps detections above the
// confidence threshold and optionally draws boxes and labels onto a copy of
// the frame.
type Service struct {
	detector  plate.Detector
	threshold float64
	modelURL  string
}

func New(detector plate.Detector, threshold float64, modelURL string) *Service {
	return &Service{detector: detector, threshold: threshold, modelURL: modelURL}
}

// Detect decodes the uploaded frame and returns detections with confidence
// above threshold. A non-positive threshold falls back to the configured
// default.
func (s *Service) Detect(ctx context.Context, r io.Reader, threshold float64) ([]plate.Detection, error) {
	_, detections, err := s.detect(ctx, r, threshold)
	return detections, err
}

// DetectAndAnnotate additionally returns the frame re-encoded as JPEG with a
// rectangle and a "Plaka - 0.87" style label per detection.
func (s *Service) DetectAndAnnotate(ctx context.Context, r io.Reader, threshold float64) ([]plate.Detection, []byte, error) {
	img, detections, err := s.detect(ctx, r, threshold)
	if err != nil {
		return nil, nil, err
	}

	marked := annotate(img, detections)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, marked, nil); err != nil {
		return nil, nil, apperrors.WrapInternal(err, "encode annotated image")
	}
	return detections, buf.Bytes(), nil
}

// Status reports whether the model backend is reachable.
func (s *Service) Status(ctx context.Context) (loaded bool, modelURL string) {
	return s.detector.Healthy(ctx), s.modelURL
}

func (s *Service) detect(ctx context.Context, r io.Reader, threshold float64) (image.Image, []plate.Detection, error) {
	if threshold <= 0 {
		threshold = s.threshold
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, nil, apperrors.NewInvalidArgument("image could not be decoded")
	}

	all, err := s.detector.Predict(ctx, img)
	if err != nil {
		return nil, nil, apperrors.WrapInternal(err, "predict")
	}

	detections := make([]plate.Detection, 0, len(all))
	for _, d := range all {
		if d.Confidence > threshold {
			detections = append(detections, d)
		}
	}
	return img, detections, nil
}

func annotate(img image.Image, detections []plate.Detection) *image.RGBA {
	marked := image.NewRGBA(img.Bounds())
	draw.Draw(marked, marked.Bounds(), img, img.Bounds().Min, draw.Src)

	for _, d := range detections {
		rect := image.Rect(int(d.X1), int(d.Y1), int(d.X2), int(d.Y2))
		drawRect(marked, rect, 2)
		drawLabel(marked, fmt.Sprintf("Plaka - %.2f", d.Confidence), int(d.X1), int(d.Y1)-10)
	}
	return marked
}

func drawRect(img *image.RGBA, rect image.Rectangle, thickness int) {
	rect = rect.Intersect(img.Bounds())
	for t := 0; t < thickness; t++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, rect.Min.Y+t, boxColor)
			img.Set(x, rect.Max.Y-1-t, boxColor)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			img.Set(rect.Min.X+t, y, boxColor)
			img.Set(rect.Max.X-1-t, y, boxColor)
		}
	}
}

func drawLabel(img *image.RGBA, label string, x, y int) {
	if y < basicfont.Face7x13.Height {
		y = basicfont.Face7x13.Height
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(boxColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
