package dashboard

import "github.com/sells-group/ev-dashboard/internal/model"

// Options are the values each selector may currently offer.
type Options struct {
	Counties      []string `json:"counties" yaml:"counties"`
	Cities        []string `json:"cities" yaml:"cities"`
	Manufacturers []string `json:"manufacturers" yaml:"manufacturers"`
	Models        []string `json:"models" yaml:"models"`
}

// distinct collects non-empty keys in first-seen order.
func distinct(rows []model.Vehicle, keep func(model.Vehicle) bool, key func(model.Vehicle) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range rows {
		if keep != nil && !keep(v) {
			continue
		}
		k := key(v)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Counties lists every county in the full dataset.
func Counties(all []model.Vehicle) []string {
	return distinct(all, nil, func(v model.Vehicle) string { return v.County })
}

// CitiesFor lists the cities of one county. No county, no cities.
func CitiesFor(all []model.Vehicle, county string) []string {
	if county == "" {
		return nil
	}
	return distinct(all,
		func(v model.Vehicle) bool { return v.County == county },
		func(v model.Vehicle) string { return v.City },
	)
}

// Manufacturers lists the makes present in the county/city-filtered rows.
func Manufacturers(filtered []model.Vehicle) []string {
	return distinct(filtered, nil, func(v model.Vehicle) string { return v.Make })
}

// ModelsFor lists the models of one make within the filtered rows.
func ModelsFor(filtered []model.Vehicle, manufacturer string) []string {
	if manufacturer == "" {
		return nil
	}
	return distinct(filtered,
		func(v model.Vehicle) bool { return v.Make == manufacturer },
		func(v model.Vehicle) string { return v.Model },
	)
}

func first(opts []string) string {
	if len(opts) == 0 {
		return ""
	}
	return opts[0]
}
