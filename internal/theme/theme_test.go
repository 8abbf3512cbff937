package theme

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuiltinCatalogIsValid(t *testing.T) {
	for _, d := range Builtin() {
		if err := d.Validate(); err != nil {
			t.Errorf("builtin theme %s invalid: %v", d.Key, err)
		}
	}
}

func TestListOrderIsStable(t *testing.T) {
	r := NewRegistry()

	want := []string{"theme1", "theme2", "theme3", "theme4", "theme5", "theme6", "theme7"}
	if got := r.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys: want %v, got %v", want, got)
	}

	first := r.List()
	second := r.List()
	if !reflect.DeepEqual(first, second) {
		t.Error("List should return the same sequence on every call")
	}

	// Mutating the returned slice must not leak into the registry.
	first[0].DisplayName = "changed"
	if r.List()[0].DisplayName != "Sunset Passion" {
		t.Error("List returned the registry's backing slice")
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	r := NewRegistry()

	for _, key := range []string{"", "theme99", "THEME1", "Sunset Passion"} {
		got := r.Resolve(key)
		if !reflect.DeepEqual(got, r.Resolve("theme1")) {
			t.Errorf("Resolve(%q): want default theme, got %s", key, got.Key)
		}
	}

	if got := r.Resolve("theme5"); got.DisplayName != "Ocean Blue" {
		t.Errorf("Resolve(theme5): want Ocean Blue, got %q", got.DisplayName)
	}
}

func TestLookup(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Lookup("nope"); ok {
		t.Error("Lookup should report a missing key")
	}
	d, ok := r.Lookup("theme7")
	if !ok {
		t.Fatal("Lookup(theme7) should succeed")
	}
	if d.Colors.Primary != "#156F69" {
		t.Errorf("theme7 primary: want #156F69, got %s", d.Colors.Primary)
	}
	if !r.Has("theme2") || r.Has("theme0") {
		t.Error("Has returned the wrong answer")
	}
}

func TestNewRegistryFromRejectsBadCatalogs(t *testing.T) {
	good := SunsetPassion()

	badColor := good
	badColor.Key = "bad"
	badColor.Colors.Accent = "#12345"

	missing := good
	missing.Key = "missing"
	missing.Colors.TextDark = ""

	tests := []struct {
		name string
		defs []Definition
		want string
	}{
		{"empty", nil, "empty"},
		{"duplicate", []Definition{good, good}, "duplicate"},
		{"bad color", []Definition{good, badColor}, "invalid color format"},
		{"missing role", []Definition{missing}, "missing color role textDark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistryFrom(tt.defs)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"light", ModeLight, true},
		{"dark", ModeDark, true},
		{"Dark", "", false},
		{"system", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q): want (%q, %v), got (%q, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}

	if ModeLight.Toggle() != ModeDark || ModeDark.Toggle() != ModeLight {
		t.Error("Toggle should flip between light and dark")
	}
}
