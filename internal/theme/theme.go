package theme

import (
	"fmt"

	"github.com/Dhanuzh/dbexplorer/internal/colorspace"
)

// Mode is the light/dark display variant, orthogonal to the theme.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// DefaultMode applies when no mode has been chosen yet.
const DefaultMode = ModeDark

// ParseMode returns the mode named by s. ok is false for anything other
// than "light" or "dark".
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLight, ModeDark:
		return Mode(s), true
	}
	return "", false
}

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	_, ok := ParseMode(string(m))
	return ok
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeLight {
		return ModeDark
	}
	return ModeLight
}

// Palette is the fixed set of semantic color roles every theme supplies.
// Values are #RRGGBB strings.
type Palette struct {
	Primary      string `json:"primary" yaml:"primary" toml:"primary"`
	PrimaryLight string `json:"primaryLight" yaml:"primaryLight" toml:"primaryLight"`
	PrimaryDark  string `json:"primaryDark" yaml:"primaryDark" toml:"primaryDark"`
	Secondary    string `json:"secondary" yaml:"secondary" toml:"secondary"`
	Accent       string `json:"accent" yaml:"accent" toml:"accent"`
	Dark         string `json:"dark" yaml:"dark" toml:"dark"`

	// Mode-neutral roles
	Background     string `json:"background" yaml:"background" toml:"background"`
	BackgroundDark string `json:"backgroundDark" yaml:"backgroundDark" toml:"backgroundDark"`
	Surface        string `json:"surface" yaml:"surface" toml:"surface"`
	SurfaceDark    string `json:"surfaceDark" yaml:"surfaceDark" toml:"surfaceDark"`
	Text           string `json:"text" yaml:"text" toml:"text"`
	TextDark       string `json:"textDark" yaml:"textDark" toml:"textDark"`
}

// Role pairs a role name with its color.
type Role struct {
	Name  string
	Color string
}

// Roles returns the palette in declaration order.
func (p Palette) Roles() []Role {
	return []Role{
		{"primary", p.Primary},
		{"primaryLight", p.PrimaryLight},
		{"primaryDark", p.PrimaryDark},
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"dark", p.Dark},
		{"background", p.Background},
		{"backgroundDark", p.BackgroundDark},
		{"surface", p.Surface},
		{"surfaceDark", p.SurfaceDark},
		{"text", p.Text},
		{"textDark", p.TextDark},
	}
}

// Validate checks that every role holds a well-formed #RRGGBB color.
func (p Palette) Validate() error {
	for _, r := range p.Roles() {
		if r.Color == "" {
			return fmt.Errorf("missing color role %s", r.Name)
		}
		if _, err := colorspace.ParseHex(r.Color); err != nil {
			return fmt.Errorf("role %s: %w", r.Name, err)
		}
	}
	return nil
}

// Definition is a named palette.
type Definition struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"displayName"`
	Colors      Palette `json:"colors"`
}

// Validate checks the key and every color role.
func (d Definition) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("theme key is required")
	}
	if d.DisplayName == "" {
		return fmt.Errorf("theme %s: display name is required", d.Key)
	}
	if err := d.Colors.Validate(); err != nil {
		return fmt.Errorf("theme %s: %w", d.Key, err)
	}
	return nil
}

// Registry is the ordered, immutable catalog of themes. Registration
// order is display order and the first entry is the default.
type Registry struct {
	themes []Definition
	index  map[string]int
}

// NewRegistry creates a registry holding the builtin themes.
func NewRegistry() *Registry {
	r, err := NewRegistryFrom(Builtin())
	if err != nil {
		panic(fmt.Sprintf("builtin theme catalog: %v", err))
	}
	return r
}

// NewRegistryFrom creates a registry from defs, keeping their order.
// It fails on an empty catalog, a duplicate key, or an invalid definition.
func NewRegistryFrom(defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("theme catalog is empty")
	}
	r := &Registry{
		themes: make([]Definition, 0, len(defs)),
		index:  make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.index[d.Key]; dup {
			return nil, fmt.Errorf("duplicate theme key: %s", d.Key)
		}
		r.index[d.Key] = len(r.themes)
		r.themes = append(r.themes, d)
	}
	return r, nil
}

// List returns every theme in display order.
func (r *Registry) List() []Definition {
	out := make([]Definition, len(r.themes))
	copy(out, r.themes)
	return out
}

// Keys returns every theme key in display order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.themes))
	for i, d := range r.themes {
		keys[i] = d.Key
	}
	return keys
}

// Lookup returns the theme registered under key.
func (r *Registry) Lookup(key string) (Definition, bool) {
	i, ok := r.index[key]
	if !ok {
		return Definition{}, false
	}
	return r.themes[i], true
}

// Has reports whether key names a registered theme.
func (r *Registry) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Resolve returns the theme registered under key, or the default theme
// when there is none. It never fails.
func (r *Registry) Resolve(key string) Definition {
	if d, ok := r.Lookup(key); ok {
		return d
	}
	return r.Default()
}

// Default returns the first registered theme.
func (r *Registry) Default() Definition {
	return r.themes[0]
}
