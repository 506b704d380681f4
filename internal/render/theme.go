package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Mode is a colour scheme.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// rgb is a 24-bit colour.
type rgb struct{ r, g, b uint8 }

// Theme is the palette used for terminal output.
type Theme struct {
	Mode      Mode
	primary   rgb
	secondary rgb
	muted     rgb
	// Color disables escape sequences when false.
	Color bool
}

var palettes = map[Mode]struct{ primary, secondary, muted rgb }{
	ModeLight: {primary: rgb{0x19, 0x76, 0xd2}, secondary: rgb{0xdc, 0x00, 0x4e}, muted: rgb{0x60, 0x60, 0x60}},
	ModeDark:  {primary: rgb{0x90, 0xca, 0xf9}, secondary: rgb{0xf4, 0x8f, 0xb1}, muted: rgb{0xb0, 0xb0, 0xb0}},
}

// NewTheme returns the palette for mode. Unknown modes fall back to light.
func NewTheme(mode string, color bool) Theme {
	m := Mode(strings.ToLower(mode))
	p, ok := palettes[m]
	if !ok {
		m = ModeLight
		p = palettes[ModeLight]
	}
	return Theme{Mode: m, primary: p.primary, secondary: p.secondary, muted: p.muted, Color: color}
}

// Toggle switches between light and dark.
func (t Theme) Toggle() Theme {
	if t.Mode == ModeDark {
		return NewTheme(string(ModeLight), t.Color)
	}
	return NewTheme(string(ModeDark), t.Color)
}

// Primary paints s in the primary colour (headers, pager).
func (t Theme) Primary(s string) string { return t.paint(t.primary, s) }

// Secondary paints s in the secondary colour (errors).
func (t Theme) Secondary(s string) string { return t.paint(t.secondary, s) }

// Muted paints s in the muted colour (hints, empty states).
func (t Theme) Muted(s string) string { return t.paint(t.muted, s) }

func (t Theme) paint(c rgb, s string) string {
	if !t.Color || s == "" {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.r, c.g, c.b, s)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the column count of w, or 80 when w is not a
// terminal.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 80
}
