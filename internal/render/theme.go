package render

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme is a named set of hex colors (without '#') shared by charts and
// the terminal report.
type Theme struct {
	Name       string
	Dark       bool
	Background string
	Surface    string
	Text       string
	Muted      string
	Axis       string
	Series     []string
}

// Series colors in chart order: blue, emerald, violet, amber, gray, cyan,
// pink, lime, fuchsia.
var seriesColors = []string{
	"3b82f6", "10b981", "8b5cf6", "f59e0b", "6b7280",
	"06b6d4", "ec4899", "84cc16", "d946ef",
}

var (
	// Light is the default theme.
	Light = Theme{
		Name:       "light",
		Background: "ffffff",
		Surface:    "f9fafb",
		Text:       "111827",
		Muted:      "4b5563",
		Axis:       "d1d5db",
		Series:     seriesColors,
	}
	// Dark is used when the darkMode preference is set.
	Dark = Theme{
		Name:       "dark",
		Dark:       true,
		Background: "030712",
		Surface:    "111827",
		Text:       "f9fafb",
		Muted:      "9ca3af",
		Axis:       "374151",
		Series:     seriesColors,
	}
)

// ThemeFor picks the theme for the stored preference.
func ThemeFor(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// SeriesColor returns the color of the i-th series, cycling the palette.
func (t Theme) SeriesColor(i int) string {
	if len(t.Series) == 0 {
		return t.Text
	}
	return t.Series[i%len(t.Series)]
}

// palette adapts a Theme to chart.ColorPalette.
type palette struct {
	theme Theme
}

var _ chart.ColorPalette = palette{}

func (p palette) BackgroundColor() drawing.Color       { return drawing.ColorFromHex(p.theme.Background) }
func (p palette) BackgroundStrokeColor() drawing.Color { return drawing.ColorFromHex(p.theme.Background) }
func (p palette) CanvasColor() drawing.Color           { return drawing.ColorFromHex(p.theme.Background) }
func (p palette) CanvasStrokeColor() drawing.Color     { return drawing.ColorFromHex(p.theme.Axis) }
func (p palette) AxisStrokeColor() drawing.Color       { return drawing.ColorFromHex(p.theme.Axis) }
func (p palette) TextColor() drawing.Color             { return drawing.ColorFromHex(p.theme.Text) }
func (p palette) GetSeriesColor(index int) drawing.Color {
	return drawing.ColorFromHex(p.theme.SeriesColor(index))
}
