// internal/classifier/preprocess.go
package classifier

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	// ImageSize is the height and width the model input is resized to.
	ImageSize = 224
	// Channels is the number of color channels in the model input.
	Channels = 3
)

// Preprocess decodes imageBytes, resizes to ImageSize×ImageSize, and flattens
// into an NHWC float32 tensor with every channel value scaled to [0,1].
func Preprocess(imageBytes []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	resized := resize.Resize(ImageSize, ImageSize, img, resize.Lanczos3)

	bounds := resized.Bounds()
	input := make([]float32, ImageSize*ImageSize*Channels)

	for y := 0; y < ImageSize; y++ {
		for x := 0; x < ImageSize; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			// RGBA returns 16-bit values; take the high byte and divide by 255
			idx := (y*ImageSize + x) * Channels
			input[idx] = float32(r>>8) / 255.0
			input[idx+1] = float32(g>>8) / 255.0
			input[idx+2] = float32(b>>8) / 255.0
		}
	}

	return input, nil
}
