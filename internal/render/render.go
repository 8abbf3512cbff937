// Package render writes a theme variable set as CSS, JSON, YAML or TOML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Dhanuzh/dbexplorer/internal/cssroot"
)

// Format names an output encoding.
type Format string

const (
	FormatCSS  Format = "css"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats in help order.
var Formats = []Format{FormatCSS, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat accepts a format name in any case; "yml" is an alias for yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSS, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want css, json, yaml or toml)", s)
}

// Document is the exported view of one applied theme.
type Document struct {
	Theme     string            `json:"theme" yaml:"theme" toml:"theme"`
	Mode      string            `json:"mode" yaml:"mode" toml:"mode"`
	Variables map[string]string `json:"variables" yaml:"variables" toml:"variables"`
}

// Render writes doc to w. Variables are always emitted in name order.
func Render(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatCSS:
		return CSS(w, doc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	}
	return fmt.Errorf("unknown format %q", format)
}

// CSS writes a :root block headed by a comment naming the theme and the
// marker class that goes with it.
func CSS(w io.Writer, doc Document) error {
	snap := cssroot.Snapshot{Properties: doc.Variables}
	if doc.Mode != "" {
		snap.Classes = []string{doc.Mode}
	}
	return Stylesheet(w, doc.Theme, snap)
}

// Stylesheet writes a root scope snapshot as a :root block, headed by a
// comment naming themeKey when it is set.
func Stylesheet(w io.Writer, themeKey string, root cssroot.Snapshot) error {
	if themeKey != "" {
		if _, err := fmt.Fprintf(w, "/* theme: %s */\n", themeKey); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, root.Stylesheet())
	return err
}

// ContentType returns the MIME type for format.
func ContentType(format Format) string {
	switch format {
	case FormatCSS:
		return "text/css; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatTOML:
		return "application/toml"
	}
	return "text/plain; charset=utf-8"
}
