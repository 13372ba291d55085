package dashboard

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ev-dashboard/internal/model"
)

func TestTopManufacturers_CollapsesOthers(t *testing.T) {
	got := TopManufacturers(fixture())

	require.Len(t, got.Data, 5)
	assert.Equal(t, 10, got.Total)

	want := []ManufacturerShare{
		{Name: "TESLA", Value: 4, Share: 40},
		{Name: "NISSAN", Value: 2, Share: 20},
		{Name: "TOYOTA", Value: 1, Share: 10},
		{Name: "CHEVROLET", Value: 1, Share: 10},
		{Name: OthersLabel, Value: 2, Share: 20},
	}
	for i, w := range want {
		assert.Equal(t, w.Name, got.Data[i].Name)
		assert.Equal(t, w.Value, got.Data[i].Value)
		assert.InDelta(t, w.Share, got.Data[i].Share, 1e-9)
	}
}

func TestTopManufacturers_NoOthersForFourOrFewer(t *testing.T) {
	rows := []model.Vehicle{
		car("King", "Seattle", "A", "a", "2020", "1"),
		car("King", "Seattle", "B", "b", "2020", "1"),
		car("King", "Seattle", "C", "c", "2020", "1"),
		car("King", "Seattle", "D", "d", "2020", "1"),
		car("King", "Seattle", "D", "d", "2020", "1"),
	}
	got := TopManufacturers(rows)
	require.Len(t, got.Data, 4)
	for _, s := range got.Data {
		assert.NotEqual(t, OthersLabel, s.Name)
	}
	assert.Equal(t, "D", got.Data[0].Name)
}

func TestTopManufacturers_SharesSumToHundred(t *testing.T) {
	// Seven makes with counts that do not divide evenly.
	var rows []model.Vehicle
	for i, n := range []int{7, 5, 3, 3, 2, 1, 1} {
		for range n {
			rows = append(rows, car("King", "Seattle", fmt.Sprintf("MAKE%d", i), "X", "2020", "0"))
		}
	}

	got := TopManufacturers(rows)
	require.Len(t, got.Data, 5)
	assert.Equal(t, OthersLabel, got.Data[4].Name)
	assert.Equal(t, 4, got.Data[4].Value)

	var sum float64
	var count int
	for _, s := range got.Data {
		sum += s.Share
		count += s.Value
	}
	assert.InDelta(t, 100, sum, 1e-9)
	assert.Equal(t, len(rows), count)
}

func TestTopManufacturers_TiesKeepFirstSeenOrder(t *testing.T) {
	rows := []model.Vehicle{
		car("King", "Seattle", "TESLA", "MODEL 3", "2022", "250"),
		car("King", "Bellevue", "NISSAN", "LEAF", "2021", "0"),
	}
	got := TopManufacturers(rows)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "TESLA", got.Data[0].Name)
	assert.Equal(t, "NISSAN", got.Data[1].Name)
}

func TestTopManufacturers_Empty(t *testing.T) {
	got := TopManufacturers(nil)
	assert.Empty(t, got.Data)
	assert.Equal(t, 0, got.Total)
}

func TestTopModels(t *testing.T) {
	got := TopModels(fixture())
	assert.Equal(t, []ModelCount{
		{Model: "MODEL 3", Vehicles: 3},
		{Model: "LEAF", Vehicles: 2},
		{Model: "MODEL Y", Vehicles: 1},
		{Model: "PRIUS PRIME", Vehicles: 1},
		{Model: "BOLT EV", Vehicles: 1},
	}, got)
}

func TestTopModels_FewerThanFive(t *testing.T) {
	got := TopModels(Filter{County: "Thurston"}.Apply(fixture()))
	assert.Equal(t, []ModelCount{{Model: "LEAF", Vehicles: 1}}, got)
	assert.Empty(t, TopModels(nil))
}

func TestRangeByYear_FirstRowWins(t *testing.T) {
	got := RangeByYear(fixture(), "TESLA", "MODEL 3")
	assert.Equal(t, []YearRange{
		{Year: 2020, Range: 322},
		{Year: 2022, Range: 0},
	}, got)
}

func TestRangeByYear_SameYearDifferentRanges(t *testing.T) {
	rows := []model.Vehicle{
		car("King", "Seattle", "NISSAN", "LEAF", "2019", "150"),
		car("King", "Seattle", "NISSAN", "LEAF", "2019", "226"),
		car("King", "Seattle", "NISSAN", "LEAF", "2019", "0"),
	}
	got := RangeByYear(rows, "NISSAN", "LEAF")
	assert.Equal(t, []YearRange{{Year: 2019, Range: 150}}, got)

	// Reversing the dataset flips which range wins.
	rows[0], rows[1] = rows[1], rows[0]
	got = RangeByYear(rows, "NISSAN", "LEAF")
	assert.Equal(t, []YearRange{{Year: 2019, Range: 226}}, got)
}

func TestRangeByYear_NoMatch(t *testing.T) {
	assert.Empty(t, RangeByYear(fixture(), "TESLA", "LEAF"))
	assert.Empty(t, RangeByYear(fixture(), "", ""))
}

func TestFuelEligibility(t *testing.T) {
	got := FuelEligibility(fixture())
	assert.Equal(t, 10, got.Total)
	require.Len(t, got.Data, 3)

	assert.Equal(t, model.Eligible, got.Data[0].Eligibility)
	assert.Equal(t, 6, got.Data[0].Count)
	assert.InDelta(t, 60, got.Data[0].Percent, 1e-9)

	assert.Equal(t, model.Unknown, got.Data[1].Eligibility)
	assert.Equal(t, 2, got.Data[1].Count)
	assert.InDelta(t, 20, got.Data[1].Percent, 1e-9)

	assert.Equal(t, model.NotEligible, got.Data[2].Eligibility)
	assert.Equal(t, 2, got.Data[2].Count)
	assert.InDelta(t, 20, got.Data[2].Percent, 1e-9)
}

func TestFuelEligibility_BucketsAreExhaustive(t *testing.T) {
	rows := []model.Vehicle{
		withEligibility(car("King", "Seattle", "A", "a", "2020", "0"), model.CAFVEligible),
		withEligibility(car("King", "Seattle", "A", "a", "2020", "0"), model.CAFVLowRange),
		withEligibility(car("King", "Seattle", "A", "a", "2020", "0"), "unresearched"),
		withEligibility(car("King", "Seattle", "A", "a", "2020", "0"), ""),
		withEligibility(car("King", "Seattle", "A", "a", "2020", "0"), "something new"),
	}
	got := FuelEligibility(rows)

	counts := map[model.Eligibility]int{}
	for _, b := range got.Data {
		counts[b.Eligibility] += b.Count
	}
	assert.Equal(t, map[model.Eligibility]int{
		model.Eligible:    1,
		model.NotEligible: 1,
		model.Unknown:     3,
	}, counts)
	assert.Equal(t, len(rows), got.Total)
}

func TestFuelEligibility_Empty(t *testing.T) {
	got := FuelEligibility(nil)
	assert.Empty(t, got.Data)
	assert.Equal(t, 0, got.Total)
}

func TestFuelTypes(t *testing.T) {
	got := FuelTypes(fixture())
	assert.Equal(t, []TypeCount{
		{Name: model.BEV, Value: 8},
		{Name: model.PHEV, Value: 2},
	}, got.Types)
	assert.Empty(t, got.Omitted)
}

func TestFuelTypes_ThirdCategoryIsReportedAsOmitted(t *testing.T) {
	rows := append(fixture(), withType(car("King", "Seattle", "X", "x", "2024", "0"), "Fuel Cell Electric Vehicle (FCEV)"))
	got := FuelTypes(rows)
	require.Len(t, got.Types, MaxFuelTypes)
	assert.Equal(t, []TypeCount{{Name: "Fuel Cell Electric Vehicle (FCEV)", Value: 1}}, got.Omitted)
}

func TestFuelTypes_EncounterOrderNotCount(t *testing.T) {
	rows := []model.Vehicle{
		withType(car("King", "Seattle", "A", "a", "2020", "0"), model.PHEV),
		car("King", "Seattle", "A", "a", "2020", "0"),
		car("King", "Seattle", "A", "a", "2020", "0"),
	}
	got := FuelTypes(rows)
	require.Len(t, got.Types, 2)
	assert.Equal(t, model.PHEV, got.Types[0].Name)
	assert.Equal(t, model.BEV, got.Types[1].Name)
}

func TestAdoptionTrend(t *testing.T) {
	got := AdoptionTrend(fixture())
	assert.Equal(t, []YearCount{
		{Year: 2018, Models: 1},
		{Year: 2019, Models: 1},
		{Year: 2020, Models: 3},
		{Year: 2021, Models: 2},
		{Year: 2022, Models: 2},
		{Year: 2023, Models: 1},
	}, got)
}

func TestAdoptionTrend_UnparseableYearSortsFirst(t *testing.T) {
	rows := []model.Vehicle{
		car("King", "Seattle", "A", "a", "2020", "0"),
		car("King", "Seattle", "A", "a", "", "0"),
	}
	got := AdoptionTrend(rows)
	assert.Equal(t, []YearCount{{Year: 0, Models: 1}, {Year: 2020, Models: 1}}, got)
}

func TestGroupedCountsSumToFilteredRows(t *testing.T) {
	all := fixture()
	filters := []Filter{
		{},
		{County: "King"},
		{County: "King", City: "Seattle"},
		{County: "Pierce", City: "Lakewood"},
		{County: "Nowhere"},
	}

	for _, f := range filters {
		t.Run(f.County+"/"+f.City, func(t *testing.T) {
			rows := f.Apply(all)

			var manufacturers int
			for _, s := range TopManufacturers(rows).Data {
				manufacturers += s.Value
				assert.False(t, math.IsNaN(s.Share))
			}
			assert.Equal(t, len(rows), manufacturers)

			var eligibility int
			for _, b := range FuelEligibility(rows).Data {
				eligibility += b.Count
				assert.False(t, math.IsNaN(b.Percent))
			}
			assert.Equal(t, len(rows), eligibility)

			var trend int
			for _, y := range AdoptionTrend(rows) {
				trend += y.Models
			}
			assert.Equal(t, len(rows), trend)

			var types int
			mix := FuelTypes(rows)
			for _, tc := range append(mix.Types, mix.Omitted...) {
				types += tc.Value
			}
			assert.Equal(t, len(rows), types)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, percent(0, 0))
	assert.Equal(t, 0.0, percent(5, 0))
	assert.InDelta(t, 50.0, percent(1, 2), 1e-9)
}
