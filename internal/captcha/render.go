// Package captcha renders labelled captcha images for training and
// evaluation. The output mimics the style the classifier was trained on:
// gradiated background, per-glyph font and color jitter, noise strokes,
// and a ripple distortion pass.
package captcha

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
)

// Alphabet is every character a captcha can contain, in class-index order.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Canvas size of generated images. The solver stretches to its own input
// size, so this only needs to match the training generator.
const (
	Width  = 200
	Height = 50
)

// DefaultTextLength is the number of characters per captcha.
const DefaultTextLength = 5

// Glyph colors, picked per character.
var glyphColors = []color.NRGBA{
	{R: 0, G: 0, B: 0, A: 255},   // black
	{R: 0, G: 0, B: 255, A: 255}, // blue
}

// Renderer draws captcha images using a fixed font set and an injected
// random source, so generation is reproducible under a seeded source.
type Renderer struct {
	fonts *FontSet
	rng   *rand.Rand
}

func NewRenderer(fonts *FontSet, rng *rand.Rand) *Renderer {
	return &Renderer{fonts: fonts, rng: rng}
}

// RandomText returns a fresh captcha answer of n characters from Alphabet.
func (r *Renderer) RandomText(n int) string {
	chars := make([]byte, n)
	for i := range chars {
		chars[i] = Alphabet[r.rng.Intn(len(Alphabet))]
	}
	return string(chars)
}

// Render draws text onto a Width x Height canvas.
func (r *Renderer) Render(text string) image.Image {
	dc := gg.NewContext(Width, Height)

	r.drawBackground(dc)
	r.drawText(dc, text)
	r.drawNoise(dc)

	return ripple(dc.Image(), r.rng)
}

// drawBackground fills the canvas with a diagonal gradient between two
// random light colors, so the glyphs stay legible.
func (r *Renderer) drawBackground(dc *gg.Context) {
	grad := gg.NewLinearGradient(0, 0, Width, Height)
	grad.AddColorStop(0, r.lightColor())
	grad.AddColorStop(1, r.lightColor())
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()
}

func (r *Renderer) lightColor() color.Color {
	return color.NRGBA{
		R: uint8(160 + r.rng.Intn(96)),
		G: uint8(160 + r.rng.Intn(96)),
		B: uint8(160 + r.rng.Intn(96)),
		A: 255,
	}
}

// drawText lays the glyphs out left to right with per-glyph font, color,
// rotation and baseline jitter.
func (r *Renderer) drawText(dc *gg.Context, text string) {
	if len(text) == 0 {
		return
	}
	step := float64(Width) / float64(len(text)+1)
	for i, ch := range text {
		c := glyphColors[r.rng.Intn(len(glyphColors))]
		dc.SetColor(c)
		dc.SetFontFace(r.fonts.Pick(r.rng))

		x := step * float64(i+1)
		y := float64(Height)/2 + (r.rng.Float64()-0.5)*8
		angle := (r.rng.Float64() - 0.5) * 0.5 // radians, roughly +-14 degrees

		dc.Push()
		dc.RotateAbout(angle, x, y)
		dc.DrawStringAnchored(string(ch), x, y, 0.5, 0.5)
		dc.Pop()
	}
}

// drawNoise adds a handful of thin random strokes across the canvas.
func (r *Renderer) drawNoise(dc *gg.Context) {
	strokes := 4 + r.rng.Intn(4)
	for i := 0; i < strokes; i++ {
		c := glyphColors[r.rng.Intn(len(glyphColors))]
		dc.SetColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 128})
		dc.SetLineWidth(0.1 + float64(r.rng.Intn(7))*0.1)
		dc.DrawLine(
			r.rng.Float64()*Width, r.rng.Float64()*Height,
			r.rng.Float64()*Width, r.rng.Float64()*Height)
		dc.Stroke()
	}
}

// ripple displaces each column vertically along a sine wave, the same
// warp the training generator applied.
func ripple(img image.Image, rng *rand.Rand) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	amplitude := 2.0 + rng.Float64()*2.0
	period := 40.0 + rng.Float64()*40.0
	phase := rng.Float64() * 2 * math.Pi

	for x := 0; x < w; x++ {
		shift := int(math.Round(amplitude * math.Sin(2*math.Pi*float64(x)/period+phase)))
		for y := 0; y < h; y++ {
			srcY := y + shift
			if srcY < 0 {
				srcY = 0
			} else if srcY >= h {
				srcY = h - 1
			}
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+srcY))
		}
	}
	return out
}
