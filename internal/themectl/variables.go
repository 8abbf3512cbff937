package themectl

import (
	"fmt"

	"github.com/Dhanuzh/dbexplorer/internal/colorspace"
	"github.com/Dhanuzh/dbexplorer/internal/theme"
)

// CSS custom properties written to the root scope.
const (
	VarThemePrimary      = "--theme-primary"
	VarThemePrimaryLight = "--theme-primary-light"
	VarThemePrimaryDark  = "--theme-primary-dark"
	VarThemeSecondary    = "--theme-secondary"
	VarThemeAccent       = "--theme-accent"
	VarThemeDark         = "--theme-dark"
	VarThemePrimaryRGB   = "--theme-primary-rgb"

	VarPrimary           = "--primary"
	VarPrimaryForeground = "--primary-foreground"
	VarSecondary         = "--secondary"
	VarAccent            = "--accent"
	VarRing              = "--ring"
)

// VariableNames lists every property Compute produces.
var VariableNames = []string{
	VarThemePrimary,
	VarThemePrimaryLight,
	VarThemePrimaryDark,
	VarThemeSecondary,
	VarThemeAccent,
	VarThemeDark,
	VarThemePrimaryRGB,
	VarPrimary,
	VarPrimaryForeground,
	VarSecondary,
	VarAccent,
	VarRing,
}

// Foreground contrast values paired with --primary.
const (
	foregroundDark  = "0 0% 98%"
	foregroundLight = "0 0% 10%"
)

// Variables maps a custom property name to its value. A set is built
// whole by Compute and never edited afterwards.
type Variables map[string]string

// Clone returns an independent copy.
func (v Variables) Clone() Variables {
	out := make(Variables, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Compute derives the full variable set for def in mode. The palette must
// be valid; registry themes always are, so a conversion failure is a
// catalog bug and panics.
func Compute(def theme.Definition, mode theme.Mode) Variables {
	c := def.Colors

	foreground := foregroundLight
	if mode == theme.ModeDark {
		foreground = foregroundDark
	}

	primaryHSL := mustHSL(c.Primary)
	return Variables{
		VarThemePrimary:      c.Primary,
		VarThemePrimaryLight: c.PrimaryLight,
		VarThemePrimaryDark:  c.PrimaryDark,
		VarThemeSecondary:    c.Secondary,
		VarThemeAccent:       c.Accent,
		VarThemeDark:         c.Dark,
		VarThemePrimaryRGB:   mustRGB(c.Primary),
		VarPrimary:           primaryHSL,
		VarPrimaryForeground: foreground,
		VarSecondary:         mustHSL(c.Secondary),
		VarAccent:            mustHSL(c.Accent),
		VarRing:              primaryHSL,
	}
}

func mustRGB(hex string) string {
	v, err := colorspace.HexToRGBTriple(hex)
	if err != nil {
		panic(fmt.Sprintf("theme color: %v", err))
	}
	return v
}

func mustHSL(hex string) string {
	v, err := colorspace.HexToHSLTriple(hex)
	if err != nil {
		panic(fmt.Sprintf("theme color: %v", err))
	}
	return v
}
