package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// DefaultThemeName is used for unknown or empty theme names.
const DefaultThemeName = "trans"

// ColorTheme defines application colors.
type ColorTheme struct {
	HighlightText       tcell.Color
	HighlightDirText    tcell.Color
	HighlightBackground tcell.Color
	NormalText          tcell.Color
	NormalBackground    tcell.Color
	StatusBarText       tcell.Color
	StatusBarBackground tcell.Color
}

var themes = map[string]ColorTheme{
	"trans": {
		HighlightText:       tcell.PaletteColor(0),
		HighlightDirText:    tcell.PaletteColor(57),
		HighlightBackground: tcell.PaletteColor(175),
		NormalText:          tcell.PaletteColor(7),
		NormalBackground:    tcell.PaletteColor(31),
		StatusBarText:       tcell.PaletteColor(7),
		StatusBarBackground: tcell.PaletteColor(31),
	},
	"dark": {
		HighlightText:       tcell.PaletteColor(0),
		HighlightDirText:    tcell.PaletteColor(27),
		HighlightBackground: tcell.PaletteColor(255),
		NormalText:          tcell.PaletteColor(255),
		NormalBackground:    tcell.PaletteColor(0),
		StatusBarText:       tcell.PaletteColor(255),
		StatusBarBackground: tcell.PaletteColor(0),
	},
}

// GetColorTheme returns the named theme, falling back to the default theme.
func GetColorTheme(name string) ColorTheme {
	if theme, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return theme
	}
	return themes[DefaultThemeName]
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	_, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// WithOverrides replaces individual slots. Keys are snake_case slot names
// (highlight_text, normal_background, ...); values are W3C color names,
// #rrggbb, or a 0-255 palette index.
func (t ColorTheme) WithOverrides(overrides map[string]string) (ColorTheme, error) {
	for slot, value := range overrides {
		color, err := ParseColor(value)
		if err != nil {
			return t, fmt.Errorf("color %s: %w", slot, err)
		}
		switch slot {
		case "highlight_text":
			t.HighlightText = color
		case "highlight_dir_text":
			t.HighlightDirText = color
		case "highlight_background":
			t.HighlightBackground = color
		case "normal_text":
			t.NormalText = color
		case "normal_background":
			t.NormalBackground = color
		case "status_bar_text":
			t.StatusBarText = color
		case "status_bar_background":
			t.StatusBarBackground = color
		default:
			return t, fmt.Errorf("unknown color slot %q", slot)
		}
	}
	return t, nil
}

// ParseColor accepts "default", a palette index, a W3C name or #rrggbb.
func ParseColor(value string) (tcell.Color, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "default" {
		return tcell.ColorDefault, nil
	}
	if idx, err := strconv.Atoi(value); err == nil {
		if idx < 0 || idx > 255 {
			return tcell.ColorDefault, fmt.Errorf("palette index %d out of range", idx)
		}
		return tcell.PaletteColor(idx), nil
	}
	color := tcell.GetColor(value)
	if color == tcell.ColorDefault {
		return color, fmt.Errorf("unknown color %q", value)
	}
	return color, nil
}

// sgr builds a single escape that resets attributes and sets both colors.
func sgr(fg, bg tcell.Color) string {
	return "\x1b[0;" + colorParam(fg, 38) + ";" + colorParam(bg, 48) + "m"
}

// colorParam renders the SGR parameters for one color; base is 38 for the
// foreground and 48 for the background.
func colorParam(c tcell.Color, base int) string {
	if !c.Valid() {
		return strconv.Itoa(base + 1)
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return fmt.Sprintf("%d;2;%d;%d;%d", base, r, g, b)
	}
	return fmt.Sprintf("%d;5;%d", base, int(c&0xff))
}
