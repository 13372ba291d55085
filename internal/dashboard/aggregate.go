package dashboard

import (
	"cmp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/ev-dashboard/internal/model"
)

const (
	// TopManufacturerCount is how many makes keep their own slice before
	// the rest collapse into Others.
	TopManufacturerCount = 4
	// TopModelCount is how many models the popularity chart lists.
	TopModelCount = 5
	// MaxFuelTypes is how many vehicle type categories the fuel type
	// chart shows. The dataset carries BEV and PHEV only.
	MaxFuelTypes = 2
	// OthersLabel names the collapsed manufacturer bucket.
	OthersLabel = "Others"
)

// ManufacturerShare is one slice of the manufacturer donut.
type ManufacturerShare struct {
	Name  string  `json:"name" yaml:"name"`
	Value int     `json:"value" yaml:"value"`
	Share float64 `json:"share" yaml:"share"`
}

// ManufacturerShares is the top-manufacturer series with the filtered
// vehicle total it was computed against.
type ManufacturerShares struct {
	Data  []ManufacturerShare `json:"data" yaml:"data"`
	Total int                 `json:"total" yaml:"total"`
}

// ModelCount is one bar of the model popularity chart.
type ModelCount struct {
	Model    string `json:"model" yaml:"model"`
	Vehicles int    `json:"vehicles" yaml:"vehicles"`
}

// YearRange is the electric range reported for one model year.
type YearRange struct {
	Year  int `json:"year" yaml:"year"`
	Range int `json:"range" yaml:"range"`
}

// EligibilityCount is one CAFV bucket.
type EligibilityCount struct {
	Eligibility model.Eligibility `json:"eligibility" yaml:"eligibility"`
	Count       int               `json:"count" yaml:"count"`
	Percent     float64           `json:"percent" yaml:"percent"`
}

// EligibilityBreakdown is the CAFV series with its vehicle total.
type EligibilityBreakdown struct {
	Data  []EligibilityCount `json:"data" yaml:"data"`
	Total int                `json:"total" yaml:"total"`
}

// TypeCount is one vehicle type category.
type TypeCount struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// FuelTypeMix holds the displayed vehicle type categories and any that
// were cut by MaxFuelTypes.
type FuelTypeMix struct {
	Types   []TypeCount `json:"types" yaml:"types"`
	Omitted []TypeCount `json:"omitted,omitempty" yaml:"omitted,omitempty"`
}

// YearCount is the number of registrations for one model year.
type YearCount struct {
	Year   int `json:"year" yaml:"year"`
	Models int `json:"models" yaml:"models"`
}

// tally counts rows per key, remembering the order keys were first seen.
type tally struct {
	keys   []string
	counts map[string]int
}

func countBy(rows []model.Vehicle, key func(model.Vehicle) string) tally {
	t := tally{counts: make(map[string]int)}
	for _, v := range rows {
		k := key(v)
		if _, ok := t.counts[k]; !ok {
			t.keys = append(t.keys, k)
		}
		t.counts[k]++
	}
	return t
}

// byCountDesc returns the keys ordered by descending count. Ties keep
// first-seen order.
func (t tally) byCountDesc() []string {
	keys := slices.Clone(t.keys)
	slices.SortStableFunc(keys, func(a, b string) int {
		return cmp.Compare(t.counts[b], t.counts[a])
	})
	return keys
}

// percent is count/total*100, or 0 for an empty total.
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// TopManufacturers ranks makes by registrations. The first four keep their
// own share; the rest collapse into Others, whose share is whatever is left
// of 100 so the slices always add up.
func TopManufacturers(rows []model.Vehicle) ManufacturerShares {
	t := countBy(rows, func(v model.Vehicle) string { return v.Make })
	keys := t.byCountDesc()
	total := len(rows)

	top := keys[:min(len(keys), TopManufacturerCount)]
	data := make([]ManufacturerShare, 0, len(top)+1)
	var topShare float64
	for _, k := range top {
		s := ManufacturerShare{Name: k, Value: t.counts[k], Share: percent(t.counts[k], total)}
		topShare += s.Share
		data = append(data, s)
	}

	var others int
	for _, k := range keys[len(top):] {
		others += t.counts[k]
	}
	if others > 0 {
		data = append(data, ManufacturerShare{Name: OthersLabel, Value: others, Share: 100 - topShare})
	}

	return ManufacturerShares{Data: data, Total: total}
}

// TopModels returns the five most registered models.
func TopModels(rows []model.Vehicle) []ModelCount {
	t := countBy(rows, func(v model.Vehicle) string { return v.Model })
	keys := t.byCountDesc()
	keys = keys[:min(len(keys), TopModelCount)]

	out := make([]ModelCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, ModelCount{Model: k, Vehicles: t.counts[k]})
	}
	return out
}

// RangeByYear reports, per model year, the electric range of the first
// make/model row seen in dataset order. Later rows for a year are ignored.
// A zero range stays in the series as unknown.
func RangeByYear(rows []model.Vehicle, manufacturer, modelName string) []YearRange {
	seen := make(map[string]bool)
	var out []YearRange
	for _, v := range rows {
		if v.Make != manufacturer || v.Model != modelName {
			continue
		}
		key := strings.TrimSpace(v.ModelYear)
		if seen[key] {
			continue
		}
		seen[key] = true
		year, _ := v.Year()
		out = append(out, YearRange{Year: year, Range: v.Range()})
	}
	slices.SortStableFunc(out, func(a, b YearRange) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// FuelEligibility buckets rows by CAFV eligibility. Buckets are listed in
// the order first seen; percentages are not corrected to sum to 100.
func FuelEligibility(rows []model.Vehicle) EligibilityBreakdown {
	t := countBy(rows, func(v model.Vehicle) string { return string(v.Eligibility()) })

	var total int
	for _, k := range t.keys {
		total += t.counts[k]
	}

	data := make([]EligibilityCount, 0, len(t.keys))
	for _, k := range t.keys {
		data = append(data, EligibilityCount{
			Eligibility: model.Eligibility(k),
			Count:       t.counts[k],
			Percent:     percent(t.counts[k], total),
		})
	}
	return EligibilityBreakdown{Data: data, Total: total}
}

// FuelTypes counts vehicle type categories in the order first seen and
// keeps the first MaxFuelTypes of them. Extra categories are returned in
// Omitted rather than dropped silently.
func FuelTypes(rows []model.Vehicle) FuelTypeMix {
	t := countBy(rows, func(v model.Vehicle) string { return v.EVType })

	var mix FuelTypeMix
	for i, k := range t.keys {
		tc := TypeCount{Name: k, Value: t.counts[k]}
		if i < MaxFuelTypes {
			mix.Types = append(mix.Types, tc)
			continue
		}
		mix.Omitted = append(mix.Omitted, tc)
	}

	if len(mix.Omitted) > 0 {
		zap.L().Warn("dashboard: fuel type categories beyond limit omitted",
			zap.Int("limit", MaxFuelTypes),
			zap.Int("omitted_categories", len(mix.Omitted)),
		)
	}
	return mix
}

// AdoptionTrend counts registrations per model year, oldest first. Years
// that do not parse sort as zero.
func AdoptionTrend(rows []model.Vehicle) []YearCount {
	t := countBy(rows, func(v model.Vehicle) string { return strings.TrimSpace(v.ModelYear) })

	out := make([]YearCount, 0, len(t.keys))
	for _, k := range t.keys {
		year, _ := model.Vehicle{ModelYear: k}.Year()
		out = append(out, YearCount{Year: year, Models: t.counts[k]})
	}
	slices.SortStableFunc(out, func(a, b YearCount) int { return cmp.Compare(a.Year, b.Year) })
	return out
}
