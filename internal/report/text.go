package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sells-group/ev-dashboard/internal/dashboard"
	"github.com/sells-group/ev-dashboard/internal/render"
)

// Title heads the terminal dashboard.
const Title = "EV Analytics Dashboard"

const (
	placeholder = "Select"
	barWidth    = 24
)

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	subtle lipgloss.Style
	panel  lipgloss.Style
	value  lipgloss.Style
	badge  lipgloss.Style
	theme  render.Theme
}

func newStyles(theme render.Theme) styles {
	hex := func(h string) lipgloss.Color { return lipgloss.Color("#" + h) }
	return styles{
		title:  lipgloss.NewStyle().Foreground(hex(theme.Text)).Bold(true),
		header: lipgloss.NewStyle().Foreground(hex(theme.SeriesColor(0))).Bold(true),
		subtle: lipgloss.NewStyle().Foreground(hex(theme.Muted)),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(hex(theme.Axis)).
			Padding(0, 1),
		value: lipgloss.NewStyle().Foreground(hex(theme.Text)).Bold(true),
		badge: lipgloss.NewStyle().Foreground(hex(theme.Muted)).Background(hex(theme.Surface)),
		theme: theme,
	}
}

func (s styles) swatch(i int) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#" + s.theme.SeriesColor(i))).Render("■")
}

func orPlaceholder(v string) string {
	if v == "" {
		return placeholder
	}
	return v
}

func bar(value, top int) string {
	if top <= 0 || value <= 0 {
		return ""
	}
	n := value * barWidth / top
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// Text renders the whole dashboard for a terminal.
func Text(v dashboard.View, theme render.Theme) string {
	s := newStyles(theme)

	state := "-"
	if len(v.States) > 0 {
		state = strings.Join(v.States, ", ")
	}
	meta := fmt.Sprintf("State: %s · %s vehicles", state, render.Count(v.Rows))
	if v.Extent != nil {
		meta += fmt.Sprintf(" · %s located within (%.4f, %.4f) to (%.4f, %.4f)",
			render.Count(v.Extent.Points), v.Extent.MinLon, v.Extent.MinLat, v.Extent.MaxLon, v.Extent.MaxLat)
	}
	filters := fmt.Sprintf("County: %s   City: %s   Manufacturer: %s   Model: %s",
		orPlaceholder(v.Selection.County), orPlaceholder(v.Selection.City),
		orPlaceholder(v.Selection.RangeMake), orPlaceholder(v.Selection.RangeModel))

	left := lipgloss.JoinVertical(lipgloss.Left,
		s.panel.Render(manufacturersPanel(s, v.TopManufacturers)),
		s.panel.Render(rangePanel(s, v)),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		s.panel.Render(modelsPanel(s, v.TopModels)),
		s.panel.Render(eligibilityPanel(s, v.FuelEligibility)),
	)

	return strings.Join([]string{
		s.title.Render(Title),
		s.subtle.Render(meta),
		filters,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		s.panel.Render(fuelTypesPanel(s, v.FuelTypes)),
		s.panel.Render(trendPanel(s, v.AdoptionTrend)),
	}, "\n\n")
}

func manufacturersPanel(s styles, m dashboard.ManufacturerShares) string {
	lines := []string{
		s.header.Render(render.KindManufacturers.Title()),
		s.subtle.Render(fmt.Sprintf("%-22s %s", "Manufacturer", "Vehicles / share")),
	}
	for i, d := range m.Data {
		lines = append(lines, fmt.Sprintf("%s %-20s %s %s",
			s.swatch(i), d.Name, s.value.Render(render.Count(d.Value)), s.badge.Render(render.Percent(d.Share))))
	}
	if len(m.Data) == 0 {
		lines = append(lines, s.subtle.Render("No vehicles"))
	}
	return strings.Join(lines, "\n")
}

func modelsPanel(s styles, models []dashboard.ModelCount) string {
	lines := []string{s.header.Render(render.KindModels.Title())}
	top := 0
	for _, m := range models {
		top = max(top, m.Vehicles)
	}
	for i, m := range models {
		lines = append(lines, fmt.Sprintf("%-16s %8s %s",
			m.Model, render.Count(m.Vehicles), lipgloss.NewStyle().Foreground(lipgloss.Color("#"+s.theme.SeriesColor(i))).Render(bar(m.Vehicles, top))))
	}
	if len(models) == 0 {
		lines = append(lines, s.subtle.Render("No vehicles"))
	}
	return strings.Join(lines, "\n")
}

func rangePanel(s styles, v dashboard.View) string {
	title := render.KindRange.Title()
	if v.Selection.RangeMake != "" {
		title += " · " + strings.TrimSpace(v.Selection.RangeMake+" "+v.Selection.RangeModel)
	}
	lines := []string{s.header.Render(title), s.subtle.Render(fmt.Sprintf("%-6s %s", "Year", "Miles"))}
	for _, r := range v.RangeByYear {
		lines = append(lines, fmt.Sprintf("%-6s %s", strconv.Itoa(r.Year), render.RangeValue(r.Range)))
	}
	if len(v.RangeByYear) == 0 {
		lines = append(lines, s.subtle.Render("No range data"))
	}
	return strings.Join(lines, "\n")
}

func eligibilityPanel(s styles, e dashboard.EligibilityBreakdown) string {
	lines := []string{
		s.header.Render(render.KindEligibility.Title()),
		s.subtle.Render("Eligibility · vehicles / percent"),
	}
	for i, d := range e.Data {
		lines = append(lines, fmt.Sprintf("%s %s\n   %s %s",
			s.swatch(i), render.EligibilityDescription(d.Eligibility),
			s.value.Render(render.EligibilityValue(d.Count)), s.badge.Render(render.Percent(d.Percent))))
	}
	if len(e.Data) == 0 {
		lines = append(lines, s.subtle.Render("No vehicles"))
	}
	return strings.Join(lines, "\n")
}

func fuelTypesPanel(s styles, mix dashboard.FuelTypeMix) string {
	lines := []string{s.header.Render(render.KindFuelTypes.Title())}
	top := 0
	for _, t := range mix.Types {
		top = max(top, t.Value)
	}
	for _, t := range mix.Types {
		lines = append(lines, fmt.Sprintf("%-40s %8s %s", t.Name, render.Count(t.Value), bar(t.Value, top)))
	}
	for _, t := range mix.Omitted {
		lines = append(lines, s.subtle.Render(fmt.Sprintf("not shown: %s (%s)", t.Name, render.Count(t.Value))))
	}
	if len(mix.Types) == 0 {
		lines = append(lines, s.subtle.Render("No vehicles"))
	}
	return strings.Join(lines, "\n")
}

func trendPanel(s styles, trend []dashboard.YearCount) string {
	lines := []string{s.header.Render(render.KindTrend.Title())}
	top := 0
	for _, y := range trend {
		top = max(top, y.Models)
	}
	for _, y := range trend {
		year := strconv.Itoa(y.Year)
		if y.Year == 0 {
			year = render.UnknownLabel
		}
		lines = append(lines, fmt.Sprintf("%-8s %8s %s", year, render.Count(y.Models), bar(y.Models, top)))
	}
	if len(trend) == 0 {
		lines = append(lines, s.subtle.Render("No vehicles"))
	}
	return strings.Join(lines, "\n")
}

// Options renders the four selector option lists.
func Options(v dashboard.View, theme render.Theme) string {
	s := newStyles(theme)
	section := func(name, current string, opts []string) string {
		lines := []string{s.header.Render(name)}
		for _, o := range opts {
			mark := " "
			if o == current {
				mark = "*"
			}
			lines = append(lines, mark+" "+o)
		}
		if len(opts) == 0 {
			lines = append(lines, s.subtle.Render("  (none)"))
		}
		return strings.Join(lines, "\n")
	}
	return strings.Join([]string{
		section("County", v.Selection.County, v.Options.Counties),
		section("City", v.Selection.City, v.Options.Cities),
		section("Manufacturer", v.Selection.RangeMake, v.Options.Manufacturers),
		section("Model", v.Selection.RangeModel, v.Options.Models),
	}, "\n\n")
}
