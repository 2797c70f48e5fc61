// Package detection checks frames for faces locally before they are sent
// to the cloud classifier.
package detection

// Box is a detected face in normalized image coordinates (0-1).
type Box struct {
	X, Y  float64 // top-left corner
	W, H  float64
	Score float64
}

// Area is the fraction of the frame the face covers.
func (b Box) Area() float64 {
	return b.W * b.H
}

// Detector finds faces in JPEG frames.
type Detector interface {
	Detect(jpeg []byte) ([]Box, error)
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath string  // YuNet ONNX model
	MinScore  float64 // YuNet score threshold

	// Initial network input size; reset to each frame's size on Detect.
	InputWidth  int
	InputHeight int

	// MinFaceArea discards faces smaller than this fraction of the frame,
	// such as people passing far behind the user.
	MinFaceArea float64
}

// DefaultConfig returns defaults for YuNet.
func DefaultConfig() Config {
	return Config{
		ModelPath:   "models/face_detection_yunet.onnx",
		MinScore:    0.6,
		InputWidth:  320,
		InputHeight: 320,
		MinFaceArea: 0.01,
	}
}

// Largest returns the biggest face. The cloud classifier reports on the
// largest face as well.
func Largest(boxes []Box) (Box, bool) {
	if len(boxes) == 0 {
		return Box{}, false
	}
	best := boxes[0]
	for _, b := range boxes[1:] {
		if b.Area() > best.Area() {
			best = b
		}
	}
	return best, true
}
