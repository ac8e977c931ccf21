// Package styles holds the named lipgloss styles the CLI renders with.
//
// Styles are declared in the embedded styles.yaml with adaptive colors, so
// output reads on light and dark terminals alike. Unknown names render
// unstyled.
package styles

import (
	_ "embed"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/yuma/pkg/errors"
)

// ColorDef is an adaptive color in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style in YAML
type StyleDef struct {
	Bold        bool   `yaml:"bold,omitempty"`
	Italic      bool   `yaml:"italic,omitempty"`
	Underline   bool   `yaml:"underline,omitempty"`
	Foreground  string `yaml:"foreground,omitempty"`
	Background  string `yaml:"background,omitempty"`
	PaddingLeft int    `yaml:"paddingLeft,omitempty"`
}

// Config is a complete styles document
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

var (
	mu       sync.RWMutex
	registry map[string]lipgloss.Style
	loadOnce sync.Once
)

// Load parses a styles document and replaces the registry
func Load(data []byte) error {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	built := make(map[string]lipgloss.Style, len(cfg.Styles))
	for name, def := range cfg.Styles {
		built[name] = buildStyle(def, colors)
	}

	mu.Lock()
	registry = built
	mu.Unlock()
	return nil
}

func ensureLoaded() {
	loadOnce.Do(func() {
		mu.RLock()
		loaded := registry != nil
		mu.RUnlock()
		if loaded {
			return
		}
		if err := Load(embeddedStyles); err != nil {
			mu.Lock()
			registry = map[string]lipgloss.Style{}
			mu.Unlock()
		}
	})
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if color, ok := colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := colors[def.Background]; ok {
		style = style.Background(color)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}
	return style
}

// Get returns the named style, or a plain one
func Get(name string) lipgloss.Style {
	ensureLoaded()
	mu.RLock()
	defer mu.RUnlock()
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Has reports whether a style is defined
func Has(name string) bool {
	ensureLoaded()
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[name]
	return ok
}

// Render applies the named style to text
func Render(name, text string) string {
	return Get(name).Render(text)
}
