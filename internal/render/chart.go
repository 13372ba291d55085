package render

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sells-group/ev-dashboard/internal/dashboard"
)

// ErrNoData is returned for a chart whose series is empty. Callers skip
// the chart.
var ErrNoData = eris.New("render: no data to chart")

// Kind identifies one of the six dashboard charts.
type Kind string

// Chart kinds in dashboard order.
const (
	KindManufacturers Kind = "top_manufacturers"
	KindModels        Kind = "top_models"
	KindRange         Kind = "ev_range"
	KindEligibility   Kind = "fuel_eligibility"
	KindFuelTypes     Kind = "fuel_type"
	KindTrend         Kind = "ev_trend"
)

// Kinds lists every chart in dashboard order.
var Kinds = []Kind{KindManufacturers, KindModels, KindRange, KindEligibility, KindFuelTypes, KindTrend}

// Title is the panel heading of the chart.
func (k Kind) Title() string {
	switch k {
	case KindManufacturers:
		return "Top Manufacturers"
	case KindModels:
		return "Top Models"
	case KindRange:
		return "EV Range"
	case KindEligibility:
		return "Fuel Eligibility"
	case KindFuelTypes:
		return "Fuel Type"
	case KindTrend:
		return "EVs Trend"
	}
	return string(k)
}

// Image formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Options sizes and encodes a chart.
type Options struct {
	Width  int
	Height int
	Format string
}

// FileName is the output file for a chart kind.
func FileName(k Kind, format string) string {
	return string(k) + "." + strings.ToLower(format)
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Chart draws one chart of the view to w.
func Chart(w io.Writer, k Kind, v dashboard.View, theme Theme, opts Options) error {
	var provider chart.RendererProvider
	switch strings.ToLower(opts.Format) {
	case FormatPNG, "":
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return eris.Errorf("render: unsupported format %q", opts.Format)
	}

	c, err := build(k, v, theme, opts)
	if err != nil {
		return err
	}
	if err := c.Render(provider, w); err != nil {
		return eris.Wrapf(err, "render: draw %s", k)
	}
	return nil
}

func build(k Kind, v dashboard.View, theme Theme, opts Options) (renderable, error) {
	switch k {
	case KindManufacturers:
		return manufacturersChart(v.TopManufacturers, theme, opts)
	case KindModels:
		return modelsChart(v.TopModels, theme, opts)
	case KindRange:
		return rangeChart(v.Selection, v.RangeByYear, theme, opts)
	case KindEligibility:
		return eligibilityChart(v.FuelEligibility, theme, opts)
	case KindFuelTypes:
		return fuelTypesChart(v.FuelTypes, theme, opts)
	case KindTrend:
		return trendChart(v.AdoptionTrend, theme, opts)
	}
	return nil, eris.Errorf("render: unknown chart %q", k)
}

func titleStyle(theme Theme) chart.Style {
	return chart.Style{FontColor: drawing.ColorFromHex(theme.Text), FontSize: 14}
}

func padded() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

func manufacturersChart(s dashboard.ManufacturerShares, theme Theme, opts Options) (renderable, error) {
	if s.Total == 0 || len(s.Data) == 0 {
		return nil, ErrNoData
	}
	values := make([]chart.Value, len(s.Data))
	for i, d := range s.Data {
		values[i] = chart.Value{
			Label: d.Name + " " + Percent(d.Share) + "%",
			Value: float64(d.Value),
		}
	}
	return &chart.DonutChart{
		Title:        KindManufacturers.Title(),
		TitleStyle:   titleStyle(theme),
		ColorPalette: palette{theme},
		Width:        opts.Width,
		Height:       opts.Height,
		Background:   padded(),
		Values:       values,
	}, nil
}

func eligibilityChart(e dashboard.EligibilityBreakdown, theme Theme, opts Options) (renderable, error) {
	if e.Total == 0 || len(e.Data) == 0 {
		return nil, ErrNoData
	}
	values := make([]chart.Value, len(e.Data))
	for i, d := range e.Data {
		values[i] = chart.Value{
			Label: string(d.Eligibility) + " " + Percent(d.Percent) + "%",
			Value: float64(d.Count),
		}
	}
	return &chart.PieChart{
		Title:        KindEligibility.Title(),
		TitleStyle:   titleStyle(theme),
		ColorPalette: palette{theme},
		Width:        opts.Width,
		Height:       opts.Height,
		Background:   padded(),
		Values:       values,
	}, nil
}

// bars builds a bar chart with a y axis that starts at zero. go-chart
// rejects a zero-height range, so all-zero series get a unit axis.
func bars(title, yName string, values []chart.Value, format chart.ValueFormatter, theme Theme, opts Options) *chart.BarChart {
	top := 0.0
	for _, v := range values {
		top = math.Max(top, v.Value)
	}
	if top == 0 {
		top = 1
	}

	barWidth := opts.Width / (len(values)*2 + 1)
	if barWidth > 80 {
		barWidth = 80
	}

	return &chart.BarChart{
		Title:        title,
		TitleStyle:   titleStyle(theme),
		ColorPalette: palette{theme},
		Width:        opts.Width,
		Height:       opts.Height,
		Background:   padded(),
		BarWidth:     barWidth,
		BarSpacing:   barWidth,
		XAxis:        chart.Style{FontColor: drawing.ColorFromHex(theme.Muted)},
		YAxis: chart.YAxis{
			Name:           yName,
			Style:          chart.Style{FontColor: drawing.ColorFromHex(theme.Muted)},
			Range:          &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: format,
		},
		Bars: values,
	}
}

func countFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return Count(int(math.Round(f)))
	}
	return ""
}

func modelsChart(models []dashboard.ModelCount, theme Theme, opts Options) (renderable, error) {
	if len(models) == 0 {
		return nil, ErrNoData
	}
	values := make([]chart.Value, len(models))
	for i, m := range models {
		values[i] = chart.Value{Label: m.Model, Value: float64(m.Vehicles)}
	}
	return bars(KindModels.Title(), "Vehicles", values, countFormatter, theme, opts), nil
}

func rangeChart(sel dashboard.Selection, ranges []dashboard.YearRange, theme Theme, opts Options) (renderable, error) {
	if len(ranges) == 0 {
		return nil, ErrNoData
	}
	values := make([]chart.Value, len(ranges))
	for i, r := range ranges {
		values[i] = chart.Value{Label: strconv.Itoa(r.Year), Value: float64(r.Range)}
	}
	title := KindRange.Title()
	if sel.RangeMake != "" {
		title += ": " + strings.TrimSpace(sel.RangeMake+" "+sel.RangeModel)
	}
	return bars(title, "Miles", values, countFormatter, theme, opts), nil
}

func fuelTypesChart(mix dashboard.FuelTypeMix, theme Theme, opts Options) (renderable, error) {
	if len(mix.Types) == 0 {
		return nil, ErrNoData
	}
	values := make([]chart.Value, len(mix.Types))
	for i, t := range mix.Types {
		values[i] = chart.Value{Label: t.Name, Value: float64(t.Value)}
	}
	return bars(KindFuelTypes.Title(), "Vehicles", values, countFormatter, theme, opts), nil
}

// trendChart plots registrations per model year as a filled area. Rows
// whose model year did not parse are left off the x axis.
func trendChart(trend []dashboard.YearCount, theme Theme, opts Options) (renderable, error) {
	var xs, ys []float64
	for _, yc := range trend {
		if yc.Year == 0 {
			continue
		}
		xs = append(xs, float64(yc.Year))
		ys = append(ys, float64(yc.Models))
	}
	if len(xs) == 0 {
		return nil, ErrNoData
	}

	minX, maxX := xs[0], xs[len(xs)-1]
	if minX == maxX {
		minX, maxX = minX-1, maxX+1
	}
	top := 0.0
	for _, y := range ys {
		top = math.Max(top, y)
	}

	color := drawing.ColorFromHex(theme.SeriesColor(0))
	return &chart.Chart{
		Title:        KindTrend.Title(),
		TitleStyle:   titleStyle(theme),
		ColorPalette: palette{theme},
		Width:        opts.Width,
		Height:       opts.Height,
		Background:   padded(),
		XAxis: chart.XAxis{
			Name:  "Year",
			Style: chart.Style{FontColor: drawing.ColorFromHex(theme.Muted)},
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(math.Round(f)))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:           "Models",
			Style:          chart.Style{FontColor: drawing.ColorFromHex(theme.Muted)},
			Range:          &chart.ContinuousRange{Min: 0, Max: math.Max(top*1.1, 1)},
			ValueFormatter: countFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "models",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color,
					StrokeWidth: 2,
					FillColor:   color.WithAlpha(64),
				},
			},
		},
	}, nil
}
