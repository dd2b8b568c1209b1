package svgrender

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/benoitkugler/svgscene/svganim"
	"github.com/benoitkugler/svgscene/svgnode"
)

// Config holds the renderer settings read from a TOML file, such as
//
//	antialias = true
//	interpolation = "bilinear"
//	progressive_paint = false
//	pixel_unit_to_millimeter = 0.26458
//	font_size = 16
//
//	[viewport]
//	width = 400
//	height = 300
type Config struct {
	Antialias             bool     `toml:"antialias"`
	Interpolation         string   `toml:"interpolation"`
	ProgressivePaint      bool     `toml:"progressive_paint"`
	PixelUnitToMillimeter float64  `toml:"pixel_unit_to_millimeter"`
	FontSize              float64  `toml:"font_size"`
	Viewport              Viewport `toml:"viewport"`
}

// Viewport is the size used to resolve percentages. A zero size
// selects the size of the offscreen target.
type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// DefaultConfig returns the settings matching the default render context.
func DefaultConfig() Config {
	return Config{
		Antialias:             svgnode.DefaultHints.Antialias,
		Interpolation:         svgnode.DefaultHints.Interpolation.String(),
		PixelUnitToMillimeter: svganim.DefaultPixelUnitToMillimeter,
		FontSize:              svganim.DefaultFontSize,
	}
}

var interpolations = map[string]svgnode.Interpolation{
	svgnode.NearestNeighbor.String(): svgnode.NearestNeighbor,
	svgnode.ApproxBiLinear.String():  svgnode.ApproxBiLinear,
	svgnode.BiLinear.String():        svgnode.BiLinear,
	svgnode.CatmullRom.String():      svgnode.CatmullRom,
}

// DecodeConfig parses a TOML document. Missing keys keep their
// default value; unknown keys are rejected.
func DecodeConfig(data string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.Decode(data, &c)
	if err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("invalid config: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := c.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// LoadConfig reads and decodes the TOML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return DecodeConfig(string(data))
}

func (c Config) validate() error {
	if _, ok := interpolations[c.Interpolation]; !ok {
		return fmt.Errorf("unknown interpolation %q", c.Interpolation)
	}
	if c.PixelUnitToMillimeter <= 0 {
		return fmt.Errorf("pixel_unit_to_millimeter should be positive, got %g", c.PixelUnitToMillimeter)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size should be positive, got %g", c.FontSize)
	}
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("negative viewport %g x %g", c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

// Hints returns the rendering hints; an unknown interpolation
// selects bilinear.
func (c Config) Hints() svgnode.Hints {
	interp, ok := interpolations[c.Interpolation]
	if !ok {
		interp = svgnode.BiLinear
	}
	return svgnode.Hints{Antialias: c.Antialias, Interpolation: interp}
}

// Units returns the unit context described by the configuration.
func (c Config) Units() svganim.UnitContext {
	uc := svganim.DefaultUnitContext(c.Viewport.Width, c.Viewport.Height)
	if c.FontSize > 0 {
		uc.FontSize = c.FontSize
	}
	if c.PixelUnitToMillimeter > 0 {
		uc.PixelUnitToMillimeter = c.PixelUnitToMillimeter
	}
	return uc
}
