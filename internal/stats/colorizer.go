package stats

import "github.com/fatih/color"

// Color names accepted as override keys.
const (
	ColorBold    = "bold"
	ColorRed     = "red"
	ColorGreen   = "green"
	ColorYellow  = "yellow"
	ColorCyan    = "cyan"
	ColorMagenta = "magenta"
)

// colorReset ends an overridden escape span.
const colorReset = "\x1b[0m"

// Colorizer renders colored text spans for the printing stage. Escape
// mechanics stay behind this wrapper: print handlers only ever name
// colors, and the request's enable flag plus any per-color escape
// overrides decide what actually reaches the terminal.
//
// A Colorizer is immutable after construction and belongs to one print
// context.
type Colorizer struct {
	enabled   bool
	overrides map[string]string
	palette   map[string]*color.Color
}

// NewColorizer creates a colorizer. When enabled is false every method
// returns its input unchanged. overrides maps color names to raw escape
// sequences, replacing the default palette for those names; it may be
// nil.
func NewColorizer(enabled bool, overrides map[string]string) *Colorizer {
	palette := map[string]*color.Color{
		ColorBold:    color.New(color.Bold),
		ColorRed:     color.New(color.FgRed),
		ColorGreen:   color.New(color.FgGreen),
		ColorYellow:  color.New(color.FgYellow),
		ColorCyan:    color.New(color.FgCyan),
		ColorMagenta: color.New(color.FgMagenta),
	}
	// Force per-instance color so the request flag, not tty detection,
	// decides.
	for _, c := range palette {
		c.EnableColor()
	}
	return &Colorizer{
		enabled:   enabled,
		overrides: overrides,
		palette:   palette,
	}
}

// paint wraps s in the named color.
func (c *Colorizer) paint(name, s string) string {
	if !c.enabled || s == "" {
		return s
	}
	if esc, ok := c.overrides[name]; ok {
		return esc + s + colorReset
	}
	if col, ok := c.palette[name]; ok {
		return col.Sprint(s)
	}
	return s
}

// Bold renders s bold.
func (c *Colorizer) Bold(s string) string { return c.paint(ColorBold, s) }

// Red renders s red.
func (c *Colorizer) Red(s string) string { return c.paint(ColorRed, s) }

// Green renders s green.
func (c *Colorizer) Green(s string) string { return c.paint(ColorGreen, s) }

// Yellow renders s yellow.
func (c *Colorizer) Yellow(s string) string { return c.paint(ColorYellow, s) }

// Cyan renders s cyan.
func (c *Colorizer) Cyan(s string) string { return c.paint(ColorCyan, s) }

// Magenta renders s magenta.
func (c *Colorizer) Magenta(s string) string { return c.paint(ColorMagenta, s) }
