package detection

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// ErrEmptyImage is returned when a frame decodes to nothing.
var ErrEmptyImage = errors.New("detection: empty image")

// YuNet output rows are x, y, w, h, five landmark pairs, then the score.
const (
	yunetScoreCol = 14
	yunetNMS      = 0.3
	yunetTopK     = 5000
)

// YuNetDetector runs OpenCV's FaceDetectorYN.
type YuNetDetector struct {
	mu     sync.Mutex
	net    gocv.FaceDetectorYN
	closed bool
}

// NewYuNet loads the model at cfg.ModelPath.
func NewYuNet(cfg Config) (*YuNetDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("detection: yunet model: %w", err)
	}

	net := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath, "",
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.MinScore),
		yunetNMS,
		yunetTopK,
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)
	return &YuNetDetector{net: net}, nil
}

// Detect decodes jpeg and returns the faces in it.
func (d *YuNetDetector) Detect(jpeg []byte) ([]Box, error) {
	if len(jpeg) == 0 {
		return nil, ErrEmptyImage
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, errors.New("detection: detector closed")
	}

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("detection: decode: %w", err)
	}
	defer img.Close()
	if img.Empty() {
		return nil, ErrEmptyImage
	}

	d.net.SetInputSize(image.Pt(img.Cols(), img.Rows()))
	out := gocv.NewMat()
	defer out.Close()
	d.net.Detect(img, &out)

	w, h := float64(img.Cols()), float64(img.Rows())
	boxes := make([]Box, 0, out.Rows())
	for r := 0; r < out.Rows(); r++ {
		boxes = append(boxes, Box{
			X:     float64(out.GetFloatAt(r, 0)) / w,
			Y:     float64(out.GetFloatAt(r, 1)) / h,
			W:     float64(out.GetFloatAt(r, 2)) / w,
			H:     float64(out.GetFloatAt(r, 3)) / h,
			Score: float64(out.GetFloatAt(r, yunetScoreCol)),
		})
	}
	return boxes, nil
}

// Close releases the network. Safe to call more than once.
func (d *YuNetDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.closed = true
		d.net.Close()
	}
	return nil
}

var _ Detector = (*YuNetDetector)(nil)
