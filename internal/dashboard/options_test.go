package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/ev-dashboard/internal/model"
)

func TestCounties(t *testing.T) {
	assert.Equal(t, []string{"King", "Pierce", "Thurston"}, Counties(fixture()))
	assert.Empty(t, Counties(nil))
}

func TestCounties_SkipsEmptyValues(t *testing.T) {
	rows := []model.Vehicle{
		car("", "Seattle", "A", "a", "2020", "0"),
		car("King", "Seattle", "A", "a", "2020", "0"),
	}
	assert.Equal(t, []string{"King"}, Counties(rows))
}

func TestCitiesFor(t *testing.T) {
	all := fixture()
	assert.Equal(t, []string{"Seattle", "Bellevue"}, CitiesFor(all, "King"))
	assert.Equal(t, []string{"Tacoma", "Lakewood"}, CitiesFor(all, "Pierce"))
	assert.Empty(t, CitiesFor(all, ""))
	assert.Empty(t, CitiesFor(all, "Nowhere"))
}

func TestManufacturers_UseFilteredRows(t *testing.T) {
	all := fixture()
	assert.Equal(t, []string{"TESLA", "NISSAN", "TOYOTA", "CHEVROLET", "KIA", "FORD"}, Manufacturers(all))
	assert.Equal(t, []string{"CHEVROLET", "TESLA", "KIA", "FORD"}, Manufacturers(Filter{County: "Pierce"}.Apply(all)))
	assert.Equal(t, []string{"KIA", "FORD"}, Manufacturers(Filter{County: "Pierce", City: "Lakewood"}.Apply(all)))
}

func TestModelsFor(t *testing.T) {
	all := fixture()
	assert.Equal(t, []string{"MODEL 3", "MODEL Y"}, ModelsFor(all, "TESLA"))
	assert.Equal(t, []string{"MODEL 3"}, ModelsFor(Filter{County: "Pierce"}.Apply(all), "TESLA"))
	assert.Empty(t, ModelsFor(all, ""))
	assert.Empty(t, ModelsFor(all, "RIVIAN"))
}
