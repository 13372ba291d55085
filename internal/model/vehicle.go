package model

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Column names of the Electric Vehicle Population dataset.
const (
	ColVIN                 = "VIN (1-10)"
	ColCounty              = "County"
	ColCity                = "City"
	ColState               = "State"
	ColPostalCode          = "Postal Code"
	ColModelYear           = "Model Year"
	ColMake                = "Make"
	ColModel               = "Model"
	ColEVType              = "Electric Vehicle Type"
	ColCAFVEligibility     = "Clean Alternative Fuel Vehicle (CAFV) Eligibility"
	ColElectricRange       = "Electric Range"
	ColBaseMSRP            = "Base MSRP"
	ColLegislativeDistrict = "Legislative District"
	ColDOLVehicleID        = "DOL Vehicle ID"
	ColVehicleLocation     = "Vehicle Location"
	ColElectricUtility     = "Electric Utility"
	ColCensusTract         = "Census Tract 2020"
)

// Columns lists every dataset column in source order.
var Columns = []string{
	ColVIN, ColCounty, ColCity, ColState, ColPostalCode, ColModelYear,
	ColMake, ColModel, ColEVType, ColCAFVEligibility, ColElectricRange,
	ColBaseMSRP, ColLegislativeDistrict, ColDOLVehicleID,
	ColVehicleLocation, ColElectricUtility, ColCensusTract,
}

// RequiredColumns must be present in a dataset header for it to load.
var RequiredColumns = []string{ColCounty, ColCity, ColModelYear, ColMake, ColModel}

// ColumnKey folds a header name to lowercase letters and digits so that
// "VIN (1-10)", "vin_1_10" and "Vin 1 10" all compare equal.
func ColumnKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SQLColumn returns the snake_case column name used for a dataset column
// in database tables.
func SQLColumn(col string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(col) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}

// Vehicle is one registration row. Every attribute is kept as the text
// that was loaded; numeric fields are parsed on access.
type Vehicle struct {
	VIN                 string `json:"vin" yaml:"vin"`
	County              string `json:"county" yaml:"county"`
	City                string `json:"city" yaml:"city"`
	State               string `json:"state" yaml:"state"`
	PostalCode          string `json:"postal_code" yaml:"postal_code"`
	ModelYear           string `json:"model_year" yaml:"model_year"`
	Make                string `json:"make" yaml:"make"`
	Model               string `json:"model" yaml:"model"`
	EVType              string `json:"ev_type" yaml:"ev_type"`
	CAFVEligibility     string `json:"cafv_eligibility" yaml:"cafv_eligibility"`
	ElectricRange       string `json:"electric_range" yaml:"electric_range"`
	BaseMSRP            string `json:"base_msrp" yaml:"base_msrp"`
	LegislativeDistrict string `json:"legislative_district" yaml:"legislative_district"`
	DOLVehicleID        string `json:"dol_vehicle_id" yaml:"dol_vehicle_id"`
	VehicleLocation     string `json:"vehicle_location" yaml:"vehicle_location"`
	ElectricUtility     string `json:"electric_utility" yaml:"electric_utility"`
	CensusTract         string `json:"census_tract" yaml:"census_tract"`
}

// FromRecord builds a Vehicle from a column-name → value mapping. Unknown
// keys are ignored and missing keys leave the field empty.
func FromRecord(rec map[string]string) Vehicle {
	var v Vehicle
	for col, val := range rec {
		if p := v.field(col); p != nil {
			*p = val
		}
	}
	return v
}

// Set assigns the value of a named column. It reports false for columns
// the record does not carry.
func (v *Vehicle) Set(col, val string) bool {
	p := v.field(col)
	if p == nil {
		return false
	}
	*p = val
	return true
}

// Get returns the value of a named column, or "" for unknown columns.
func (v *Vehicle) Get(col string) string {
	if p := v.field(col); p != nil {
		return *p
	}
	return ""
}

// Values returns the row in Columns order.
func (v *Vehicle) Values() []string {
	out := make([]string, len(Columns))
	for i, col := range Columns {
		out[i] = *v.field(col)
	}
	return out
}

func (v *Vehicle) field(col string) *string {
	switch col {
	case ColVIN:
		return &v.VIN
	case ColCounty:
		return &v.County
	case ColCity:
		return &v.City
	case ColState:
		return &v.State
	case ColPostalCode:
		return &v.PostalCode
	case ColModelYear:
		return &v.ModelYear
	case ColMake:
		return &v.Make
	case ColModel:
		return &v.Model
	case ColEVType:
		return &v.EVType
	case ColCAFVEligibility:
		return &v.CAFVEligibility
	case ColElectricRange:
		return &v.ElectricRange
	case ColBaseMSRP:
		return &v.BaseMSRP
	case ColLegislativeDistrict:
		return &v.LegislativeDistrict
	case ColDOLVehicleID:
		return &v.DOLVehicleID
	case ColVehicleLocation:
		return &v.VehicleLocation
	case ColElectricUtility:
		return &v.ElectricUtility
	case ColCensusTract:
		return &v.CensusTract
	}
	return nil
}

// Year parses the model year.
func (v Vehicle) Year() (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(v.ModelYear))
	if err != nil {
		return 0, false
	}
	return y, true
}

// Range parses the electric range in miles. Zero means the range has not
// been researched; unparseable values are reported as zero too.
func (v Vehicle) Range() int {
	r, err := strconv.Atoi(strings.TrimSpace(v.ElectricRange))
	if err != nil {
		return 0
	}
	return r
}

// Point parses the WKT vehicle location, e.g. "POINT (-122.30839 47.610365)".
func (v Vehicle) Point() (*geom.Point, error) {
	loc := strings.TrimSpace(v.VehicleLocation)
	if loc == "" {
		return nil, eris.New("model: empty vehicle location")
	}
	g, err := wkt.Unmarshal(loc)
	if err != nil {
		return nil, eris.Wrapf(err, "model: parse vehicle location %q", loc)
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return nil, eris.Errorf("model: vehicle location is a %T, not a point", g)
	}
	return p, nil
}
