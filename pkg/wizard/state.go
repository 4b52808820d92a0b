package wizard

import "github.com/goliatone/go-formwizard/pkg/schema"

// State is the mutable session record: the active step position and the raw
// values entered per step. Values only ever holds steps the user has visited
// and entries are never dropped by navigation.
type State struct {
	Step   int                      `json:"step"`
	Values map[schema.StepID]Values `json:"values"`
}

// NewState returns a fresh state positioned on the first step.
func NewState() *State {
	return &State{
		Step:   1,
		Values: make(map[schema.StepID]Values),
	}
}

// Merge replaces the stored values for id with a copy of values, leaving every
// other step untouched.
func (s *State) Merge(id schema.StepID, values Values) {
	if s.Values == nil {
		s.Values = make(map[schema.StepID]Values)
	}
	stored := values.Clone()
	if stored == nil {
		stored = Values{}
	}
	s.Values[id] = stored
}

// Snapshot returns a deep copy that shares no maps with the receiver, safe to
// hand to renderers.
func (s *State) Snapshot() State {
	out := State{
		Step:   s.Step,
		Values: make(map[schema.StepID]Values, len(s.Values)),
	}
	for id, values := range s.Values {
		out.Values[id] = values.Clone()
	}
	return out
}

// Advance moves one step forward, clamped to last.
func (s *State) Advance(last int) {
	if s.Step < last {
		s.Step++
	}
}

// Retreat moves one step back, clamped to the first step.
func (s *State) Retreat() {
	if s.Step > 1 {
		s.Step--
	}
}

// StepValues returns a copy of the values stored for id.
func (s *State) StepValues(id schema.StepID) Values {
	return s.Values[id].Clone()
}

// Visited reports whether values were ever merged for id.
func (s *State) Visited(id schema.StepID) bool {
	_, ok := s.Values[id]
	return ok
}
