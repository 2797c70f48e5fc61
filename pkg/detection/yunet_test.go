package detection

import (
	"os"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

// modelPath finds the YuNet model, from EMOHELPER_FACE_MODEL or the repo's
// models/ directory.
func modelPath(t *testing.T) string {
	t.Helper()
	candidates := []string{
		os.Getenv("EMOHELPER_FACE_MODEL"),
		filepath.Join("..", "..", "models", "face_detection_yunet.onnx"),
	}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	t.Skip("YuNet model not found; set EMOHELPER_FACE_MODEL")
	return ""
}

// blankJPEG encodes a uniform gray frame.
func blankJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 128, 128, 0), h, w, gocv.MatTypeCV8UC3)
	defer mat.Close()
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	defer buf.Close()
	return append([]byte(nil), buf.GetBytes()...)
}

func TestNewYuNetMissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.onnx")
	if _, err := NewYuNet(cfg); err == nil {
		t.Error("expected an error for a missing model")
	}
}

func TestYuNet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ModelPath = modelPath(t)

	det, err := NewYuNet(cfg)
	if err != nil {
		t.Fatalf("NewYuNet: %v", err)
	}
	defer det.Close()

	t.Run("rejects bad input", func(t *testing.T) {
		if _, err := det.Detect(nil); err != ErrEmptyImage {
			t.Errorf("empty input: err = %v, want ErrEmptyImage", err)
		}
		if _, err := det.Detect([]byte("not a jpeg")); err == nil {
			t.Error("garbage input should fail")
		}
	})

	t.Run("blank frame has no face", func(t *testing.T) {
		frame := blankJPEG(t, 320, 240)
		boxes, err := det.Detect(frame)
		if err != nil {
			t.Fatalf("Detect: %v", err)
		}
		if len(boxes) != 0 {
			t.Errorf("found %d faces in a blank frame", len(boxes))
		}
		if ok, _ := NewGate(det, cfg.MinFaceArea, nil).HasFace(frame); ok {
			t.Error("gate accepted a blank frame")
		}
	})

	t.Run("closed detector fails", func(t *testing.T) {
		det.Close()
		if _, err := det.Detect(blankJPEG(t, 64, 64)); err == nil {
			t.Error("Detect after Close should fail")
		}
	})
}
