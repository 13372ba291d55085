// Package dashboard derives the filtered view, the option lists and the six
// aggregate series shown on the EV dashboard.
package dashboard

import "github.com/sells-group/ev-dashboard/internal/model"

// Filter restricts the dataset by county and city. Empty fields do not
// restrict.
type Filter struct {
	County string `json:"county,omitempty" yaml:"county,omitempty"`
	City   string `json:"city,omitempty" yaml:"city,omitempty"`
}

// Match reports whether a vehicle passes the filter.
func (f Filter) Match(v model.Vehicle) bool {
	if f.County != "" && v.County != f.County {
		return false
	}
	if f.City != "" && v.City != f.City {
		return false
	}
	return true
}

// Apply returns the matching rows in dataset order. The input is never
// modified.
func (f Filter) Apply(rows []model.Vehicle) []model.Vehicle {
	if f.County == "" && f.City == "" {
		return rows
	}
	out := make([]model.Vehicle, 0, len(rows)/4)
	for _, v := range rows {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}
