// Package face classifies the emotion of the first face in a camera frame
// using the Baidu face detection API.
package face

import (
	"context"
	"fmt"
	"os"

	"github.com/teslashibe/emotional-helper/pkg/emotions"
)

// Classifier extracts an emotion label from a JPEG frame.
// A result of emotions.None with a nil error means "no usable result":
// no face, an unsuccessful detection, or an unknown emotion type.
type Classifier interface {
	Classify(ctx context.Context, jpeg []byte) (emotions.Label, error)
}

// ClassifyFile reads a JPEG from path and classifies it with c.
func ClassifyFile(ctx context.Context, c Classifier, path string) (emotions.Label, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return emotions.None, fmt.Errorf("face: read image: %w", err)
	}
	return c.Classify(ctx, data)
}
