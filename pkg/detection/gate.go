package detection

import (
	"log/slog"
)

// Gate answers whether a frame is worth classifying.
type Gate struct {
	detector Detector
	minArea  float64
	logger   *slog.Logger
}

// NewGate wraps d. Faces smaller than minArea of the frame do not count.
func NewGate(d Detector, minArea float64, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		detector: d,
		minArea:  minArea,
		logger:   logger.With("component", "detection.gate"),
	}
}

// HasFace reports whether jpeg contains a face large enough to classify.
func (g *Gate) HasFace(jpeg []byte) (bool, error) {
	boxes, err := g.detector.Detect(jpeg)
	if err != nil {
		return false, err
	}

	face, ok := Largest(boxes)
	if !ok || face.Area() < g.minArea {
		g.logger.Debug("no usable face", "faces", len(boxes))
		return false, nil
	}

	g.logger.Debug("face found", "faces", len(boxes), "score", face.Score, "area", face.Area())
	return true, nil
}

// Close releases the detector.
func (g *Gate) Close() error {
	return g.detector.Close()
}
