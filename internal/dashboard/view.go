package dashboard

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/ev-dashboard/internal/model"
)

// Selection is the current state of the four selectors. Empty means unset.
type Selection struct {
	County     string `json:"county" yaml:"county"`
	City       string `json:"city" yaml:"city"`
	RangeMake  string `json:"range_make" yaml:"range_make"`
	RangeModel string `json:"range_model" yaml:"range_model"`
}

// Filter returns the county/city part of the selection.
func (s Selection) Filter() Filter {
	return Filter{County: s.County, City: s.City}
}

// Extent is the bounding box of the vehicle locations in a view.
type Extent struct {
	MinLon float64 `json:"min_lon" yaml:"min_lon"`
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLon float64 `json:"max_lon" yaml:"max_lon"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	Points int     `json:"points" yaml:"points"`
}

// View is everything the presentation layer is given. It never carries
// raw rows.
type View struct {
	Selection        Selection            `json:"selection" yaml:"selection"`
	Rows             int                  `json:"rows" yaml:"rows"`
	Options          Options              `json:"options" yaml:"options"`
	States           []string             `json:"states" yaml:"states"`
	Extent           *Extent              `json:"extent,omitempty" yaml:"extent,omitempty"`
	TopManufacturers ManufacturerShares   `json:"top_manufacturers" yaml:"top_manufacturers"`
	TopModels        []ModelCount         `json:"top_models" yaml:"top_models"`
	RangeByYear      []YearRange          `json:"range_by_year" yaml:"range_by_year"`
	FuelEligibility  EligibilityBreakdown `json:"fuel_eligibility" yaml:"fuel_eligibility"`
	FuelTypes        FuelTypeMix          `json:"fuel_types" yaml:"fuel_types"`
	AdoptionTrend    []YearCount          `json:"adoption_trend" yaml:"adoption_trend"`
}

// Compute derives a complete View from the dataset and a selection. It is
// pure; the selection is used as given without any cascade.
func Compute(all []model.Vehicle, sel Selection) View {
	filtered := sel.Filter().Apply(all)

	return View{
		Selection: sel,
		Rows:      len(filtered),
		Options: Options{
			Counties:      Counties(all),
			Cities:        CitiesFor(all, sel.County),
			Manufacturers: Manufacturers(filtered),
			Models:        ModelsFor(filtered, sel.RangeMake),
		},
		States:           States(filtered),
		Extent:           Locate(filtered),
		TopManufacturers: TopManufacturers(filtered),
		TopModels:        TopModels(filtered),
		RangeByYear:      RangeByYear(filtered, sel.RangeMake, sel.RangeModel),
		FuelEligibility:  FuelEligibility(filtered),
		FuelTypes:        FuelTypes(filtered),
		AdoptionTrend:    AdoptionTrend(filtered),
	}
}

// States lists the registration states present in the rows.
func States(rows []model.Vehicle) []string {
	return distinct(rows, nil, func(v model.Vehicle) string { return v.State })
}

// Locate returns the bounding box of every parseable vehicle location, or
// nil when no row has one.
func Locate(rows []model.Vehicle) *Extent {
	b := geom.NewBounds(geom.XY)
	var n int
	for _, v := range rows {
		p, err := v.Point()
		if err != nil {
			continue
		}
		b.Extend(p)
		n++
	}
	if n == 0 {
		return nil
	}
	return &Extent{
		MinLon: b.Min(0),
		MinLat: b.Min(1),
		MaxLon: b.Max(0),
		MaxLat: b.Max(1),
		Points: n,
	}
}
