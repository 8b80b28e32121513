// Package config loads and validates stipple session settings.
//
// A [Config] is read from TOML or YAML (chosen by file extension), merged
// with defaults by [Config.ValidateAndSetDefaults], and turned into layout
// generators by [Config.Generators]. Every configuration error is detected
// here, before a point set exists.
//
// # Layouts
//
// The sequence names layout entries. The built-in entries phyllotaxis,
// spiral, random, flower, tree and meta are always available; the layouts
// table adds or overrides entries:
//
//	sequence = ["tree", "phyllotaxis", "small-flower", "phyllotaxis", "meta"]
//
//	[layouts.small-flower]
//	kind = "flower"
//	symbols = "flower-7"
//	bounding_blocks = 57
package config

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stipple/pkg/ease"
	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/layout"
	"github.com/matzehuels/stipple/pkg/palette"
	"github.com/matzehuels/stipple/pkg/point"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultPoints     = 64000
	DefaultWidth      = 600
	DefaultHeight     = 600
	DefaultPointWidth = 2.0
	DefaultMargin     = 2.0
	DefaultDuration   = 8 * time.Second
	FrameRate         = 20
	DefaultBackground = "#000000"
)

// Palette orders.
const (
	OrderReversed = "reversed"
	OrderForward  = "forward"
)

// DefaultSequence is the layout cycle used when none is configured.
var DefaultSequence = []string{KindTree, KindPhyllotaxis, KindFlower, KindPhyllotaxis, KindMeta}

// Layout kinds.
const (
	KindPhyllotaxis = "phyllotaxis"
	KindSpiral      = "spiral"
	KindRandom      = "random"
	KindFlower      = "flower"
	KindTree        = "tree"
	KindMeta        = "meta"
)

var validKinds = map[string]bool{
	KindPhyllotaxis: true,
	KindSpiral:      true,
	KindRandom:      true,
	KindFlower:      true,
	KindTree:        true,
	KindMeta:        true,
}

// =============================================================================
// Config
// =============================================================================

// Config holds all session settings.
type Config struct {
	// Point set
	Points     int     `toml:"points" yaml:"points"`
	PointWidth float64 `toml:"point_width" yaml:"point_width"`
	// Margin is the gap added around each point; nil means DefaultMargin
	// so that an explicit 0 packs points edge to edge.
	Margin *float64 `toml:"margin" yaml:"margin"`

	// Canvas in pixels
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// Animation
	Duration time.Duration `toml:"duration" yaml:"duration"`
	Easing   string        `toml:"easing" yaml:"easing"`

	// Colors
	Palette      string `toml:"palette" yaml:"palette"`
	PaletteOrder string `toml:"palette_order" yaml:"palette_order"`
	Background   string `toml:"background" yaml:"background"`

	// Seed for the random scatter; nil means layout.DefaultSeed.
	Seed *uint64 `toml:"seed" yaml:"seed"`

	// BlockSize is the number of points in one composite range block.
	BlockSize int `toml:"block_size" yaml:"block_size"`

	Lattice  LatticeConfig           `toml:"lattice" yaml:"lattice"`
	Sequence []string                `toml:"sequence" yaml:"sequence"`
	Layouts  map[string]LayoutConfig `toml:"layouts" yaml:"layouts"`

	validated bool
}

// LatticeConfig sizes the anchor lattice of the composite layouts. A zero
// radius derives the radius from the canvas height and point width.
type LatticeConfig struct {
	Cols   int     `toml:"cols" yaml:"cols"`
	Rows   int     `toml:"rows" yaml:"rows"`
	Radius float64 `toml:"radius" yaml:"radius"`
}

// LayoutConfig is one named layout entry. Fields that do not apply to Kind
// are ignored; zero values take the generator's defaults.
type LayoutConfig struct {
	Kind string `toml:"kind" yaml:"kind"`

	// Phyllotaxis
	Divisor     float64 `toml:"divisor" yaml:"divisor"`
	IndexOffset int     `toml:"index_offset" yaml:"index_offset"`

	// Spiral and composite arcs
	Periods float64 `toml:"periods" yaml:"periods"`

	// Composites. Symbols and Lines name presets; SymbolIndices replaces
	// the symbol preset with explicit lattice indices.
	Symbols        string  `toml:"symbols" yaml:"symbols"`
	SymbolIndices  []int   `toml:"symbol_indices" yaml:"symbol_indices"`
	Lines          string  `toml:"lines" yaml:"lines"`
	RingRadius     float64 `toml:"ring_radius" yaml:"ring_radius"`
	RingBlocks     int     `toml:"ring_blocks" yaml:"ring_blocks"`
	LineBlocks     int     `toml:"line_blocks" yaml:"line_blocks"`
	BoundingBlocks int     `toml:"bounding_blocks" yaml:"bounding_blocks"`
}

// Default returns the settings of the reference animation, already
// validated.
func Default() *Config {
	c := &Config{}
	if err := c.ValidateAndSetDefaults(); err != nil {
		panic(fmt.Sprintf("default config invalid: %v", err))
	}
	return c
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file and validates it.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	c, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := c.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Read decodes a config file without validating it, so callers can apply
// overrides before [Config.ValidateAndSetDefaults].
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes data in the format named by ext and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	c, err := Decode(data, ext)
	if err != nil {
		return nil, err
	}
	if err := c.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return c, nil
}

// Decode decodes data in the format named by ext without validating it.
func Decode(data []byte, ext string) (*Config, error) {
	c := &Config{}
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %v", keys)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return c, nil
}

// =============================================================================
// Validation
// =============================================================================

// ValidateAndSetDefaults fills zero values with defaults and checks every
// setting. It is idempotent.
func (c *Config) ValidateAndSetDefaults() error {
	if c.validated {
		return nil
	}
	c.setDefaults()

	if err := errors.ValidatePointCount(c.Points); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas must have positive size, got %dx%d", c.Width, c.Height)
	}
	if err := errors.ValidatePositive("point_width", c.PointWidth); err != nil {
		return err
	}
	if err := errors.ValidateFinite("margin", *c.Margin); err != nil {
		return err
	}
	if *c.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin must not be negative, got %v", *c.Margin)
	}
	if c.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "duration must be positive, got %s", c.Duration)
	}
	if c.BlockSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "block_size must be positive, got %d", c.BlockSize)
	}
	if c.Lattice.Cols <= 0 || c.Lattice.Rows <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "lattice must have positive dimensions, got %dx%d", c.Lattice.Cols, c.Lattice.Rows)
	}
	if err := errors.ValidateFinite("lattice radius", c.Lattice.Radius); err != nil {
		return err
	}

	f, err := ease.Lookup(c.Easing)
	if err != nil {
		return err
	}
	if err := ease.Validate(f); err != nil {
		return err
	}
	if _, err := palette.Lookup(c.Palette); err != nil {
		return err
	}
	if _, err := colorful.Hex(c.Background); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "background")
	}
	if c.PaletteOrder != OrderReversed && c.PaletteOrder != OrderForward {
		return errors.New(errors.ErrCodeInvalidConfig, "palette_order must be %q or %q, got %q", OrderReversed, OrderForward, c.PaletteOrder)
	}

	for name, lc := range c.Layouts {
		if !validKinds[lc.Kind] {
			return errors.New(errors.ErrCodeUnknownLayout, "layout %q has unknown kind %q (valid: %v)", name, lc.Kind, Kinds())
		}
	}
	for i, name := range c.Sequence {
		if _, ok := c.Layout(name); !ok {
			return errors.New(errors.ErrCodeUnknownLayout, "sequence entry %d names unknown layout %q", i, name)
		}
	}

	c.validated = true
	return nil
}

func (c *Config) setDefaults() {
	if c.Points == 0 {
		c.Points = DefaultPoints
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.PointWidth == 0 {
		c.PointWidth = DefaultPointWidth
	}
	if c.Margin == nil {
		c.Margin = ptr(DefaultMargin)
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Easing == "" {
		c.Easing = ease.Default
	}
	if c.Palette == "" {
		c.Palette = palette.Default
	}
	if c.PaletteOrder == "" {
		c.PaletteOrder = OrderReversed
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if c.Seed == nil {
		c.Seed = ptr(layout.DefaultSeed)
	}
	if c.BlockSize == 0 {
		c.BlockSize = layout.DefaultBlockSize
	}
	if c.Lattice.Cols == 0 {
		c.Lattice.Cols = layout.DefaultLatticeCols
	}
	if c.Lattice.Rows == 0 {
		c.Lattice.Rows = layout.DefaultLatticeRows
	}
	if len(c.Sequence) == 0 {
		c.Sequence = append([]string(nil), DefaultSequence...)
	}
}

func ptr[T any](v T) *T { return &v }

// Kinds lists the valid layout kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(validKinds))
	for k := range validKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// =============================================================================
// Derived Settings
// =============================================================================

// Layout resolves a layout name: entries in Layouts win over the built-in
// entry of the same name.
func (c *Config) Layout(name string) (LayoutConfig, bool) {
	if lc, ok := c.Layouts[name]; ok {
		return lc, true
	}
	if validKinds[name] {
		return LayoutConfig{Kind: name}, true
	}
	return LayoutConfig{}, false
}

// Canvas returns the layout canvas. Layouts space points by their drawn
// width plus margin.
func (c *Config) Canvas() layout.Canvas {
	return layout.Canvas{
		Width:      float64(c.Width),
		Height:     float64(c.Height),
		PointWidth: c.PointWidth + *c.Margin,
	}
}

// Ease returns the configured easing curve.
func (c *Config) Ease() ease.Func {
	f, _ := ease.Lookup(c.Easing)
	return f
}

// Colorer returns the point colorer for the configured palette.
func (c *Config) Colorer() point.Colorer {
	r, _ := palette.Lookup(c.Palette)
	return palette.Colorer(r, c.PaletteOrder == OrderReversed)
}

// BackgroundColor returns the opaque canvas clear color.
func (c *Config) BackgroundColor() color.RGBA {
	col, _ := colorful.Hex(c.Background)
	r, g, b := col.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// FrameInterval returns the time between two frames at [FrameRate].
func (c *Config) FrameInterval() time.Duration {
	return time.Second / FrameRate
}
