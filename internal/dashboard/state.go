package dashboard

import (
	"slices"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dashboard/internal/model"
)

// ErrInvalidSelection is returned when a selector is given a value that
// is not among its current options.
var ErrInvalidSelection = eris.New("dashboard: invalid selection")

// State owns the dataset and the selection and keeps a derived View in
// step with them. Every mutation recomputes the View before it returns and
// then notifies subscribers. A State is driven by one event loop and is
// not safe for concurrent use.
type State struct {
	id   string
	all  []model.Vehicle
	sel  Selection
	view View
	subs []func(View)
}

// NewState builds a State with no county/city filter and the range chart
// pointed at the first available manufacturer and model.
func NewState(all []model.Vehicle) *State {
	s := &State{id: uuid.NewString(), all: all}
	s.cascadeMake()
	s.view = Compute(s.all, s.sel)
	return s
}

// ID identifies the session in logs.
func (s *State) ID() string { return s.id }

// Selection returns the current selection.
func (s *State) Selection() Selection { return s.sel }

// View returns the View for the current selection.
func (s *State) View() View { return s.view }

// Subscribe registers fn to receive the View after every mutation.
func (s *State) Subscribe(fn func(View)) {
	s.subs = append(s.subs, fn)
}

// SelectCounty sets the county filter and clears the city. An empty
// county removes the filter.
func (s *State) SelectCounty(county string) error {
	if county != "" && !slices.Contains(s.view.Options.Counties, county) {
		return eris.Wrapf(ErrInvalidSelection, "county %q", county)
	}
	s.sel.County = county
	s.sel.City = ""
	s.cascadeMake()
	s.commit("county")
	return nil
}

// SelectCity sets the city filter. The city must belong to the selected
// county; an empty city removes the filter.
func (s *State) SelectCity(city string) error {
	if city != "" && !slices.Contains(s.view.Options.Cities, city) {
		return eris.Wrapf(ErrInvalidSelection, "city %q in county %q", city, s.sel.County)
	}
	s.sel.City = city
	s.cascadeMake()
	s.commit("city")
	return nil
}

// SelectRangeMake points the range chart at a manufacturer. The model is
// cleared and then refilled with that manufacturer's first model.
func (s *State) SelectRangeMake(manufacturer string) error {
	if !slices.Contains(s.view.Options.Manufacturers, manufacturer) {
		return eris.Wrapf(ErrInvalidSelection, "manufacturer %q", manufacturer)
	}
	s.sel.RangeMake = manufacturer
	s.sel.RangeModel = ""
	s.cascadeModel(s.sel.Filter().Apply(s.all))
	s.commit("range_make")
	return nil
}

// SelectRangeModel picks a model of the current range manufacturer.
func (s *State) SelectRangeModel(modelName string) error {
	if !slices.Contains(s.view.Options.Models, modelName) {
		return eris.Wrapf(ErrInvalidSelection, "model %q of %q", modelName, s.sel.RangeMake)
	}
	s.sel.RangeModel = modelName
	s.commit("range_model")
	return nil
}

// Reset clears the county and city filters. The range chart falls back to
// the first manufacturer and model of the whole dataset.
func (s *State) Reset() {
	s.sel.County = ""
	s.sel.City = ""
	s.cascadeMake()
	s.commit("reset")
}

// cascadeMake re-anchors the range chart after a county/city change so it
// never shows a manufacturer absent from the filtered rows.
func (s *State) cascadeMake() {
	filtered := s.sel.Filter().Apply(s.all)
	s.sel.RangeMake = first(Manufacturers(filtered))
	s.cascadeModel(filtered)
}

func (s *State) cascadeModel(filtered []model.Vehicle) {
	s.sel.RangeModel = first(ModelsFor(filtered, s.sel.RangeMake))
}

func (s *State) commit(event string) {
	s.view = Compute(s.all, s.sel)

	zap.L().Debug("dashboard: selection changed",
		zap.String("session", s.id),
		zap.String("event", event),
		zap.String("county", s.sel.County),
		zap.String("city", s.sel.City),
		zap.String("range_make", s.sel.RangeMake),
		zap.String("range_model", s.sel.RangeModel),
		zap.Int("rows", s.view.Rows),
	)

	for _, fn := range s.subs {
		fn(s.view)
	}
}
