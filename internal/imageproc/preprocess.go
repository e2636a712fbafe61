// Package imageproc prepares captcha images for the classifier: decode,
// stretch to the model's canvas, normalize to [0,1].
package imageproc

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"
)

// Model input canvas. Must match the shapes the model was trained with.
const (
	Width    = 250
	Height   = 50
	Channels = 3
)

// LoadImage reads and decodes an image file (PNG or JPEG).
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image not found at %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image at %s: %w", path, err)
	}
	return img, nil
}

// Preprocess stretches img to Width x Height regardless of aspect ratio,
// scales pixel intensities to [0,1], and lays the result out as a single
// NHWC batch: the returned slice has 1*Height*Width*Channels elements.
func Preprocess(img image.Image) []float32 {
	resized := resize.Resize(Width, Height, img, resize.Lanczos3)

	inputData := make([]float32, Height*Width*Channels)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()

			// RGBA returns 16-bit values, so 65535 is full intensity.
			base := (y*Width + x) * Channels
			inputData[base] = float32(r) / 65535.0
			inputData[base+1] = float32(g) / 65535.0
			inputData[base+2] = float32(b) / 65535.0
		}
	}
	return inputData
}
