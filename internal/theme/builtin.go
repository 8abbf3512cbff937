package theme

// Builtin returns the shipped themes in display order. SunsetPassion is
// first and therefore the default.
func Builtin() []Definition {
	return []Definition{
		SunsetPassion(),
		PurpleDream(),
		EarthTone(),
		NatureGreen(),
		OceanBlue(),
		FireRed(),
		EmeraldGradient(),
	}
}

// neutral fills the mode-neutral roles every builtin theme shares.
func neutral(p Palette) Palette {
	p.Background = "#FFFFFF"
	p.BackgroundDark = "#1A1A1A"
	p.Surface = "#F8F9FA"
	p.SurfaceDark = "#2D2D2D"
	p.Text = "#1A1A1A"
	p.TextDark = "#FFFFFF"
	return p
}

// ═══════════════════════════════════════════════════════════════════════════════
// WARM THEMES
// ═══════════════════════════════════════════════════════════════════════════════

// SunsetPassion returns the Sunset Passion theme (default)
func SunsetPassion() Definition {
	return Definition{
		Key:         "theme1",
		DisplayName: "Sunset Passion",
		Colors: neutral(Palette{
			Primary:      "#DC586D", // Rose
			PrimaryLight: "#FB9590", // Salmon
			PrimaryDark:  "#A33757", // Raspberry
			Secondary:    "#FFBB94", // Peach
			Accent:       "#852E4E", // Wine
			Dark:         "#4C1D3D", // Plum
		}),
	}
}

// PurpleDream returns the Purple Dream theme
func PurpleDream() Definition {
	return Definition{
		Key:         "theme2",
		DisplayName: "Purple Dream",
		Colors: neutral(Palette{
			Primary:      "#A56ABD",
			PrimaryLight: "#E7DBEF",
			PrimaryDark:  "#6E3482",
			Secondary:    "#F5EBFA",
			Accent:       "#49225B",
			Dark:         "#49225B",
		}),
	}
}

// EarthTone returns the Earth Tone theme
func EarthTone() Definition {
	return Definition{
		Key:         "theme3",
		DisplayName: "Earth Tone",
		Colors: neutral(Palette{
			Primary:      "#796254", // Umber
			PrimaryLight: "#C4B6A9",
			PrimaryDark:  "#523F31",
			Secondary:    "#EADDD3", // Sand
			Accent:       "#9D8A7C",
			Dark:         "#2D1E17",
		}),
	}
}

// FireRed returns the Fire Red theme
func FireRed() Definition {
	return Definition{
		Key:         "theme6",
		DisplayName: "Fire Red",
		Colors: neutral(Palette{
			Primary:      "#C0191F",
			PrimaryLight: "#E51E1B",
			PrimaryDark:  "#7D1416",
			Secondary:    "#4D474F", // Charcoal
			Accent:       "#371211",
			Dark:         "#282F32",
		}),
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// COOL THEMES
// ═══════════════════════════════════════════════════════════════════════════════

// NatureGreen returns the Nature Green theme
func NatureGreen() Definition {
	return Definition{
		Key:         "theme4",
		DisplayName: "Nature Green",
		Colors: neutral(Palette{
			Primary:      "#98A77C", // Sage
			PrimaryLight: "#CFE1B9",
			PrimaryDark:  "#728156",
			Secondary:    "#E7F5DC",
			Accent:       "#B6C99B",
			Dark:         "#88976C",
		}),
	}
}

// OceanBlue returns the Ocean Blue theme
func OceanBlue() Definition {
	return Definition{
		Key:         "theme5",
		DisplayName: "Ocean Blue",
		Colors: neutral(Palette{
			Primary:      "#5483B3",
			PrimaryLight: "#C1E8FF", // Sky
			PrimaryDark:  "#052659", // Navy
			Secondary:    "#7DA0CA",
			Accent:       "#021024",
			Dark:         "#021024",
		}),
	}
}

// EmeraldGradient returns the Emerald Gradient theme
func EmeraldGradient() Definition {
	return Definition{
		Key:         "theme7",
		DisplayName: "Emerald Gradient",
		Colors: neutral(Palette{
			Primary:      "#156F69",
			PrimaryLight: "#16A085",
			PrimaryDark:  "#14253E",
			Secondary:    "#168777",
			Accent:       "#153D4C",
			Dark:         "#140C30",
		}),
	}
}
