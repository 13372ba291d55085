package report

import (
	"io"
	"math"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/sells-group/ev-dashboard/internal/dashboard"
	"github.com/sells-group/ev-dashboard/internal/render"
)

// Workbook sheet names.
const (
	SheetFilters       = "Filters"
	SheetManufacturers = "Top Manufacturers"
	SheetModels        = "Top Models"
	SheetRange         = "EV Range"
	SheetEligibility   = "Fuel Eligibility"
	SheetFuelTypes     = "Fuel Type"
	SheetTrend         = "EVs Trend"
)

type sheet struct {
	name   string
	header []any
	rows   [][]any
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func sheets(v dashboard.View) []sheet {
	filters := sheet{
		name:   SheetFilters,
		header: []any{"Filter", "Value"},
		rows: [][]any{
			{"County", v.Selection.County},
			{"City", v.Selection.City},
			{"Manufacturer", v.Selection.RangeMake},
			{"Model", v.Selection.RangeModel},
			{"Vehicles", v.Rows},
		},
	}

	manufacturers := sheet{name: SheetManufacturers, header: []any{"Manufacturer", "Vehicles", "Share (%)"}}
	for _, d := range v.TopManufacturers.Data {
		manufacturers.rows = append(manufacturers.rows, []any{d.Name, d.Value, round2(d.Share)})
	}

	models := sheet{name: SheetModels, header: []any{"Model", "Vehicles"}}
	for _, d := range v.TopModels {
		models.rows = append(models.rows, []any{d.Model, d.Vehicles})
	}

	ranges := sheet{name: SheetRange, header: []any{"Year", "Miles"}}
	for _, d := range v.RangeByYear {
		var miles any = d.Range
		if d.Range == 0 {
			miles = render.UnknownLabel
		}
		ranges.rows = append(ranges.rows, []any{d.Year, miles})
	}

	eligibility := sheet{name: SheetEligibility, header: []any{"Eligibility", "Description", "Vehicles", "Percent"}}
	for _, d := range v.FuelEligibility.Data {
		eligibility.rows = append(eligibility.rows, []any{
			string(d.Eligibility), render.EligibilityDescription(d.Eligibility), d.Count, round2(d.Percent),
		})
	}

	fuel := sheet{name: SheetFuelTypes, header: []any{"Type", "Vehicles"}}
	for _, d := range v.FuelTypes.Types {
		fuel.rows = append(fuel.rows, []any{d.Name, d.Value})
	}

	trend := sheet{name: SheetTrend, header: []any{"Year", "Models"}}
	for _, d := range v.AdoptionTrend {
		trend.rows = append(trend.rows, []any{d.Year, d.Models})
	}

	return []sheet{filters, manufacturers, models, ranges, eligibility, fuel, trend}
}

// WriteWorkbook writes the view as an xlsx workbook with one sheet per
// aggregate plus the active filters.
func WriteWorkbook(w io.Writer, v dashboard.View) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return eris.Wrap(err, "report: create header style")
	}

	for i, s := range sheets(v) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return eris.Wrapf(err, "report: name sheet %s", s.name)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return eris.Wrapf(err, "report: add sheet %s", s.name)
		}

		if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
			return eris.Wrapf(err, "report: write %s header", s.name)
		}
		last, _ := excelize.CoordinatesToCellName(len(s.header), 1)
		if err := f.SetCellStyle(s.name, "A1", last, bold); err != nil {
			return eris.Wrapf(err, "report: style %s header", s.name)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(s.header))
		if err := f.SetColWidth(s.name, "A", lastCol, 20); err != nil {
			return eris.Wrapf(err, "report: size %s columns", s.name)
		}

		for r, row := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return eris.Wrapf(err, "report: write %s row %d", s.name, r+2)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "report: write workbook")
	}
	return nil
}
