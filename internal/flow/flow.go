// Package flow defines conversation flows as declarative finite-state
// machines: entry triggers, per-state transition tables, and fallback
// matchers. Flows are plain data validated once at registry construction,
// so a missing handler is a startup error rather than a dispatch-time
// surprise.
package flow

import (
	"context"

	"healthbot/internal/event"
	"healthbot/internal/reply"
)

// StateID names a state within a flow.
type StateID string

// Terminal is the next-state value that ends the session. Scratch data
// is discarded when a handler returns it.
const Terminal StateID = ""

// Request carries one resolved event into a handler.
//
// Scratch is the session's transient key/value storage. Handlers may
// read and write it freely; the dispatcher commits it together with the
// state transition, and it is discarded on Terminal.
type Request struct {
	AccountID int64
	Event     event.Inbound
	Scratch   map[string]string
}

// Result is a handler's outcome: the state to move to (Terminal ends the
// session) and the reply to deliver.
type Result struct {
	Next  StateID
	Reply *reply.Reply
}

// Handler executes one step of a flow. Handlers own validation: on bad
// input they return the current state again with a corrective reply.
// An error from a handler is a store-level failure; the dispatcher leaves
// the session untouched so the step can be retried.
type Handler func(ctx context.Context, req *Request) (*Result, error)

// Transition binds an event pattern to a handler.
//
// SkipGuard exempts the transition from the access gate. Only the global
// cancel fallback sets it: cancel must stay reachable to blocked users.
type Transition struct {
	Match     Matcher
	Handler   Handler
	SkipGuard bool
}

// Flow is one named finite-state machine.
//
// Entry transitions may start the flow from outside any session (or
// re-enter it, discarding the active session). States maps each state to
// its transitions, checked in declaration order. Fallbacks apply in every
// state of this flow, after state transitions and before the global
// fallbacks.
type Flow struct {
	ID        string
	Entry     []Transition
	States    map[StateID][]Transition
	Fallbacks []Transition
}
