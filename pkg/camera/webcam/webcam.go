// Package webcam reads frames from a local camera through OpenCV.
package webcam

import (
	"fmt"
	"log/slog"
	"sync"

	"gocv.io/x/gocv"

	"github.com/teslashibe/emotional-helper/pkg/camera"
)

// Webcam is a camera.Source backed by gocv.VideoCapture.
type Webcam struct {
	cfg    camera.Config
	logger *slog.Logger

	mu     sync.Mutex
	cap    *gocv.VideoCapture
	frame  gocv.Mat
	closed bool
}

// Open opens the device in cfg and applies the requested size and rate.
func Open(cfg camera.Config, logger *slog.Logger) (*Webcam, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("webcam: invalid config: %v", errs)
	}
	if logger == nil {
		logger = slog.Default()
	}

	vc, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("webcam: open device %d: %w", cfg.DeviceID, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("webcam: device %d not available", cfg.DeviceID)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	vc.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))

	w := &Webcam{
		cfg:    cfg,
		logger: logger.With("component", "webcam"),
		cap:    vc,
		frame:  gocv.NewMat(),
	}
	w.logger.Info("camera opened",
		"device", cfg.DeviceID,
		"width", vc.Get(gocv.VideoCaptureFrameWidth),
		"height", vc.Get(gocv.VideoCaptureFrameHeight),
	)
	return w, nil
}

// Read grabs a frame and encodes it as JPEG.
func (w *Webcam) Read() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, camera.ErrClosed
	}
	if ok := w.cap.Read(&w.frame); !ok || w.frame.Empty() {
		return nil, camera.ErrReadFailed
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, w.frame, []int{int(gocv.IMWriteJpegQuality), w.cfg.Quality})
	if err != nil {
		return nil, fmt.Errorf("webcam: encode frame: %w", err)
	}
	defer buf.Close()

	src := buf.GetBytes()
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}

// Close releases the device. Safe to call more than once.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	w.frame.Close()
	return w.cap.Close()
}

var _ camera.Source = (*Webcam)(nil)
