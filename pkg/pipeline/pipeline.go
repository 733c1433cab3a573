// Package pipeline provides the parse → layout → render pipeline for
// mindlayout.
//
// This package implements the complete pipeline used by the CLI and the
// HTTP API. Centralizing it keeps defaults, validation and caching
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Prepare: Validate the content tree and measure boxes that are missing
//  2. Layout: Run the layout engine and export the result
//  3. Render: Generate output in the requested formats (SVG, PNG, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Strategy: "mindmap",
//	    Formats:  []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, root, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	x, err := runner.ComputeLayout(ctx, root, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, x, opts)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/mindlayout/pkg/cache"
	"github.com/matzehuels/mindlayout/pkg/core/geometry"
	"github.com/matzehuels/mindlayout/pkg/core/layout"
	"github.com/matzehuels/mindlayout/pkg/core/tree"
	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/render/sink"
	"github.com/matzehuels/mindlayout/pkg/theme"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels. The root is
	// centered in the frame.
	DefaultWidth = float64(layout.DefaultCanvasWidth)

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = float64(layout.DefaultCanvasHeight)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultPadding is the default margin around rendered artifacts.
	DefaultPadding = sink.DefaultPadding
)

// DefaultStrategy is the default layout strategy.
var DefaultStrategy = layout.MindMap.String()

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatGraphviz: true,
}

// ContentTypes maps output formats to their MIME type.
var ContentTypes = map[string]string{
	FormatSVG:      "image/svg+xml",
	FormatPNG:      "image/png",
	FormatJSON:     "application/json",
	FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	FormatGraphviz: "image/svg+xml",
}

// Extensions maps output formats to file extensions.
var Extensions = map[string]string{
	FormatSVG:      ".svg",
	FormatPNG:      ".png",
	FormatJSON:     ".json",
	FormatDOT:      ".dot",
	FormatGraphviz: ".gv.svg",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Strategy  string       `json:"strategy,omitempty"`
	LineStyle string       `json:"line_style,omitempty"`
	ThemePath string       `json:"-"`
	Theme     *theme.Theme `json:"-" validate:"-"`
	Width     float64      `json:"width,omitempty" validate:"gte=0"`
	Height    float64      `json:"height,omitempty" validate:"gte=0"`

	// ThemeData is an inline JSON theme from an API request. It is decoded
	// on top of the default theme.
	ThemeData json.RawMessage `json:"theme,omitempty" validate:"-"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty" validate:"gte=0,lte=16"`
	Padding  float64  `json:"padding,omitempty" validate:"gte=0"`
	Title    string   `json:"title,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Refresh skips cache lookups; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" validate:"-"`

	// resolved is the theme after defaults, file loading and overrides.
	resolved *theme.Theme

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the prepared content tree.
	Tree *tree.Node

	// TreeHash is the content hash of the tree.
	TreeHash string

	// Layout is the exported layout.
	Layout *layout.Export

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	VisibleCount int
	Measured     int
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, json, dot, graphviz)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStrategy checks that a strategy name is valid.
func ValidateStrategy(strategy string) error {
	_, err := layout.ParseKind(strategy)
	return err
}

// ValidateLineStyle checks that a line style override is valid. The empty
// string keeps the theme's style.
func ValidateLineStyle(style string) error {
	if style == "" {
		return nil
	}
	for _, s := range theme.LineStyles {
		if string(s) == style {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidTheme,
		"invalid line style: %q (must be one of: straight, direct, curve)", style)
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// It also resolves the theme, so a missing or invalid theme file is
// reported here.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := validatorInstance().Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}
	if err := ValidateLineStyle(o.LineStyle); err != nil {
		return err
	}
	_, err := o.ResolveTheme()
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Kind returns the parsed strategy. Call after validation.
func (o *Options) Kind() layout.Kind {
	k, err := layout.ParseKind(o.Strategy)
	if err != nil {
		return layout.MindMap
	}
	return k
}

// ResolveTheme returns the effective theme: the inline theme, else the
// inline JSON theme, else the theme file, else the default, with the line
// style override applied. The result is memoized.
func (o *Options) ResolveTheme() (theme.Theme, error) {
	if o.resolved != nil {
		return *o.resolved, nil
	}

	var (
		t   theme.Theme
		err error
	)
	switch {
	case o.Theme != nil:
		t, err = theme.WithDefaults(*o.Theme)
	case len(o.ThemeData) > 0:
		t, err = theme.Parse(o.ThemeData, "json")
	case o.ThemePath != "":
		t, err = theme.Load(o.ThemePath)
	default:
		t = theme.Default()
	}
	if err != nil {
		return theme.Theme{}, err
	}
	if o.LineStyle != "" {
		t.LineStyle = theme.LineStyle(o.LineStyle)
	}
	o.resolved = &t
	return t, nil
}

// LayoutConfig builds the engine configuration: strategy, theme and the
// frame center as origin.
func (o *Options) LayoutConfig() (layout.Config, error) {
	o.SetLayoutDefaults()
	t, err := o.ResolveTheme()
	if err != nil {
		return layout.Config{}, err
	}
	return layout.Config{
		Strategy: o.Kind(),
		Theme:    t,
		Origin:   geometry.Point{X: o.Width / 2, Y: o.Height / 2},
	}, nil
}

// ThemeHash returns a content hash of the resolved theme.
func (o *Options) ThemeHash() string {
	t, err := o.ResolveTheme()
	if err != nil {
		return ""
	}
	h, err := cache.HashValue(t)
	if err != nil {
		return ""
	}
	return h
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Strategy:  o.Kind().String(),
		LineStyle: o.LineStyle,
		ThemeHash: o.ThemeHash(),
		OriginX:   o.Width / 2,
		OriginY:   o.Height / 2,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		ThemeHash: o.ThemeHash(),
		Padding:   o.Padding,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatDOT, FormatGraphviz:
		k.Detailed = o.Detailed
	}
	return k
}

// Describe returns a short human-readable summary of the options.
func (o *Options) Describe() string {
	return fmt.Sprintf("%s layout, formats %s", o.Kind(), strings.Join(o.Formats, ","))
}
