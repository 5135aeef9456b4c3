package flow

import (
	"fmt"

	"healthbot/internal/event"
)

// Registry holds all flows plus the global fallback transitions, indexed
// for dispatch. Construction validates the whole table; a registry that
// builds successfully cannot route to a nil handler.
//
// Flow declaration order is preserved: entry triggers are resolved in the
// order flows were registered, which keeps routing deterministic when
// prefixes could overlap.
type Registry struct {
	flows   map[string]*Flow
	order   []string
	globals []Transition
}

// NewRegistry validates the flow set and global fallbacks and builds the
// registry. Validation errors are configuration errors: duplicate flow
// ids, flows without entry triggers, malformed matchers, transitions
// without handlers, and entry triggers claimed by two flows all fail
// construction.
func NewRegistry(flows []*Flow, globals []Transition) (*Registry, error) {
	r := &Registry{
		flows: make(map[string]*Flow, len(flows)),
	}

	for _, f := range flows {
		if f == nil {
			return nil, fmt.Errorf("flow registry: nil flow")
		}
		if f.ID == "" {
			return nil, fmt.Errorf("flow registry: flow with empty id")
		}
		if _, dup := r.flows[f.ID]; dup {
			return nil, fmt.Errorf("flow registry: duplicate flow id %q", f.ID)
		}
		if len(f.Entry) == 0 {
			return nil, fmt.Errorf("flow %s: no entry triggers", f.ID)
		}
		for i, t := range f.Entry {
			if err := validateTransition(t); err != nil {
				return nil, fmt.Errorf("flow %s: entry %d: %w", f.ID, i, err)
			}
		}
		for state, transitions := range f.States {
			if state == Terminal {
				return nil, fmt.Errorf("flow %s: transitions declared on terminal state", f.ID)
			}
			if len(transitions) == 0 {
				return nil, fmt.Errorf("flow %s: state %s has no transitions", f.ID, state)
			}
			for i, t := range transitions {
				if err := validateTransition(t); err != nil {
					return nil, fmt.Errorf("flow %s: state %s: transition %d: %w", f.ID, state, i, err)
				}
			}
		}
		for i, t := range f.Fallbacks {
			if err := validateTransition(t); err != nil {
				return nil, fmt.Errorf("flow %s: fallback %d: %w", f.ID, i, err)
			}
		}
		r.flows[f.ID] = f
		r.order = append(r.order, f.ID)
	}

	// Entry triggers must be unambiguous across flows.
	for i, idA := range r.order {
		for _, idB := range r.order[i+1:] {
			for _, ta := range r.flows[idA].Entry {
				for _, tb := range r.flows[idB].Entry {
					if ta.Match.equal(tb.Match) {
						return nil, fmt.Errorf("flow registry: entry trigger %s claimed by both %s and %s",
							ta.Match, idA, idB)
					}
				}
			}
		}
	}

	for i, t := range globals {
		if err := validateTransition(t); err != nil {
			return nil, fmt.Errorf("global fallback %d: %w", i, err)
		}
	}
	r.globals = append(r.globals, globals...)

	return r, nil
}

func validateTransition(t Transition) error {
	if t.Handler == nil {
		return fmt.Errorf("missing handler for %s", t.Match)
	}
	if !t.Match.valid() {
		return fmt.Errorf("invalid matcher %s", t.Match)
	}
	return nil
}

// Flow returns the flow with the given id.
func (r *Registry) Flow(id string) (*Flow, bool) {
	f, ok := r.flows[id]
	return f, ok
}

// Globals returns the global fallback transitions, valid in every state
// of every flow.
func (r *Registry) Globals() []Transition {
	return r.globals
}

// Flows returns flow ids in declaration order.
func (r *Registry) Flows() []string {
	return r.order
}

// ResolveEntry finds the first flow (in declaration order) with an entry
// trigger matching the event.
func (r *Registry) ResolveEntry(ev event.Inbound) (*Flow, Transition, bool) {
	for _, id := range r.order {
		f := r.flows[id]
		for _, t := range f.Entry {
			if t.Match.Matches(ev) {
				return f, t, true
			}
		}
	}
	return nil, Transition{}, false
}
