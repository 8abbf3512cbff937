package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Dhanuzh/dbexplorer/internal/cssroot"
)

func sampleDoc() Document {
	return Document{
		Theme: "theme1",
		Mode:  "dark",
		Variables: map[string]string{
			"--theme-primary":     "#DC586D",
			"--primary":           "350 65% 60%",
			"--theme-primary-rgb": "220, 88, 109",
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"css": FormatCSS, "JSON": FormatJSON, " yaml ": FormatYAML, "yml": FormatYAML, "toml": FormatTOML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestCSS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatCSS, sampleDoc()))

	want := "/* theme: theme1 */\n" +
		"/* class=\"dark\" */\n" +
		":root {\n" +
		"  --primary: 350 65% 60%;\n" +
		"  --theme-primary: #DC586D;\n" +
		"  --theme-primary-rgb: 220, 88, 109;\n" +
		"}\n"
	require.Equal(t, want, buf.String())
}

func TestStylesheet(t *testing.T) {
	root := cssroot.New()
	root.ReplaceClass(nil, "compact")
	root.ReplaceClass([]string{"light", "dark"}, "light")
	root.SetProperty("--ring", "350 65% 60%")

	var buf bytes.Buffer
	require.NoError(t, Stylesheet(&buf, "theme1", root.Snapshot()))
	require.Equal(t, "/* theme: theme1 */\n/* class=\"compact light\" */\n:root {\n  --ring: 350 65% 60%;\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, Stylesheet(&buf, "", cssroot.Snapshot{}))
	require.Equal(t, ":root {\n}\n", buf.String())
}

func TestStructuredFormatsDecode(t *testing.T) {
	doc := sampleDoc()

	var js bytes.Buffer
	require.NoError(t, Render(&js, FormatJSON, doc))
	var fromJSON Document
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))
	require.Equal(t, doc, fromJSON)
	require.Less(t, strings.Index(js.String(), "--primary"), strings.Index(js.String(), "--theme-primary"))

	var ym bytes.Buffer
	require.NoError(t, Render(&ym, FormatYAML, doc))
	var fromYAML Document
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	require.Equal(t, doc, fromYAML)

	var tm bytes.Buffer
	require.NoError(t, Render(&tm, FormatTOML, doc))
	var fromTOML Document
	require.NoError(t, toml.Unmarshal(tm.Bytes(), &fromTOML))
	require.Equal(t, doc, fromTOML)
}

func TestRenderUnknownFormat(t *testing.T) {
	require.Error(t, Render(&bytes.Buffer{}, Format("xml"), sampleDoc()))
	require.Equal(t, "text/plain; charset=utf-8", ContentType(Format("xml")))
	require.Equal(t, "text/css; charset=utf-8", ContentType(FormatCSS))
}
