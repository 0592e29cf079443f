package pattern

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/VoidMesh/gridgen/internal/grid"
	"github.com/VoidMesh/gridgen/internal/logging"
)

type HeightmapConfig struct {
	// Path to a PNG, JPEG or GIF image.
	Path string `toml:"path" json:"path"`
	// Min and Max bound the kept grey values in [0,1], inclusive.
	Min    float64 `toml:"min" json:"min"`
	Max    float64 `toml:"max" json:"max"`
	Invert bool    `toml:"invert" json:"invert,omitempty"`
}

func DefaultHeightmapConfig() HeightmapConfig {
	return HeightmapConfig{Min: 0.5, Max: 1}
}

// Heightmap keeps the cells whose resampled image brightness lies in a band.
type Heightmap struct {
	Config HeightmapConfig
	// Image overrides Config.Path when set.
	Image image.Image
}

func NewHeightmap(cfg HeightmapConfig) *Heightmap {
	return &Heightmap{Config: cfg}
}

// Generate returns an empty set, never an error, when the image cannot be
// read.
func (h *Heightmap) Generate(_ *grid.PositionSet, ctx *grid.Context) (*grid.PositionSet, error) {
	out := grid.NewPositionSet()
	img := h.Image
	if img == nil {
		loaded, err := LoadImage(h.Config.Path)
		if err != nil {
			logging.WithModule("heightmap").Warn("Height texture unavailable, no cells contributed", "path", h.Config.Path, "error", err)
			return out, nil
		}
		img = loaded
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return out, nil
	}

	lo, hi := h.Config.Min, h.Config.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	for y := 0; y < ctx.Height; y++ {
		for x := 0; x < ctx.Width; x++ {
			sx := bounds.Min.X + x*bounds.Dx()/ctx.Width
			sy := bounds.Min.Y + y*bounds.Dy()/ctx.Height
			v := Luminance(img.At(sx, sy))
			if h.Config.Invert {
				v = 1 - v
			}
			if v >= lo && v <= hi {
				out.Add(grid.Pt(x, y))
			}
		}
	}
	return out, nil
}

// Luminance converts a colour to a grey value in [0,1].
func Luminance(c color.Color) float64 {
	return float64(color.Gray16Model.Convert(c).(color.Gray16).Y) / 0xffff
}

// LoadImage decodes the image at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
