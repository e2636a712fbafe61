package captcha

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Glyph sizes derived from each loaded font, matching the training set.
var fontSizes = []float64{45, 50, 55, 60}

// FontSet holds the faces a Renderer picks from.
type FontSet struct {
	faces []font.Face
}

// LoadFonts parses every .ttf file in dir and derives one face per entry
// in fontSizes. If dir does not exist or contains no usable fonts, a
// built-in bitmap face is used instead so rendering still works.
func LoadFonts(dir string) (*FontSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &FontSet{faces: []font.Face{basicfont.Face7x13}}, nil
		}
		return nil, fmt.Errorf("failed to read font directory %s: %w", dir, err)
	}

	var faces []font.Face
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".ttf") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", path, err)
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
		}
		for _, size := range fontSizes {
			faces = append(faces, truetype.NewFace(f, &truetype.Options{Size: size}))
		}
	}

	if len(faces) == 0 {
		faces = []font.Face{basicfont.Face7x13}
	}
	return &FontSet{faces: faces}, nil
}

// Pick returns a random face from the set.
func (s *FontSet) Pick(rng *rand.Rand) font.Face {
	return s.faces[rng.Intn(len(s.faces))]
}

// Len returns the number of loaded faces.
func (s *FontSet) Len() int {
	return len(s.faces)
}
