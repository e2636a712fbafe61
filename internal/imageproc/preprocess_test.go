package imageproc

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestPreprocessShape(t *testing.T) {
	// Any input resolution is stretched to the model canvas
	for _, size := range [][2]int{{250, 50}, {100, 100}, {13, 700}, {1, 1}} {
		img := solidImage(size[0], size[1], color.NRGBA{R: 128, G: 64, B: 32, A: 255})
		data := Preprocess(img)
		require.Len(t, data, 1*Height*Width*Channels)
	}
}

func TestPreprocessNormalization(t *testing.T) {
	white := Preprocess(solidImage(80, 30, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	for _, v := range white {
		require.InDelta(t, 1.0, v, 0.005)
	}

	black := Preprocess(solidImage(80, 30, color.NRGBA{A: 255}))
	for _, v := range black {
		require.InDelta(t, 0.0, v, 0.005)
	}

	mixed := Preprocess(solidImage(400, 80, color.NRGBA{R: 200, G: 10, B: 99, A: 255}))
	for _, v := range mixed {
		require.GreaterOrEqual(t, v, float32(0.0))
		require.LessOrEqual(t, v, float32(1.0))
	}
}

func TestPreprocessLayout(t *testing.T) {
	// Pure red stays pure red in every pixel triple (NHWC interleaved)
	data := Preprocess(solidImage(250, 50, color.NRGBA{R: 255, A: 255}))
	for i := 0; i < len(data); i += Channels {
		require.InDelta(t, 1.0, data[i], 0.005)
		require.InDelta(t, 0.0, data[i+1], 0.005)
		require.InDelta(t, 0.0, data[i+2], 0.005)
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()

	goodPath := filepath.Join(dir, "captcha.png")
	f, err := os.Create(goodPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solidImage(200, 50, color.NRGBA{R: 1, G: 2, B: 3, A: 255})))
	require.NoError(t, f.Close())

	img, err := LoadImage(goodPath)
	require.NoError(t, err)
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 50, img.Bounds().Dy())
}

func TestLoadImageMissing(t *testing.T) {
	_, err := LoadImage("/no/such/file.png")
	require.Error(t, err)
	require.Contains(t, err.Error(), "/no/such/file.png")
}

func TestLoadImageCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := LoadImage(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)
}
