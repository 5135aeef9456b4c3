package flow

import (
	"strings"

	"healthbot/internal/event"
)

// MatchKind selects the matching strategy for a Matcher.
type MatchKind int

const (
	// MatchCommand matches a command event by exact name.
	MatchCommand MatchKind = iota + 1
	// MatchText matches any free-text event.
	MatchText
	// MatchCallback matches a callback event by exact payload.
	MatchCallback
	// MatchCallbackPrefix matches a callback event by payload prefix.
	MatchCallbackPrefix
)

// Matcher is a tagged event pattern. Patterns are data, not functions,
// so the registry can validate them at construction and report conflicts
// before any traffic arrives.
type Matcher struct {
	Kind  MatchKind
	Value string
}

// Command matches the command with the given name (without slash).
func Command(name string) Matcher {
	return Matcher{Kind: MatchCommand, Value: name}
}

// AnyText matches every free-text event.
func AnyText() Matcher {
	return Matcher{Kind: MatchText}
}

// Callback matches a callback event with exactly the given payload.
func Callback(data string) Matcher {
	return Matcher{Kind: MatchCallback, Value: data}
}

// CallbackPrefix matches a callback event whose payload starts with the
// given prefix, e.g. "sym_cat_" or "mood_".
func CallbackPrefix(prefix string) Matcher {
	return Matcher{Kind: MatchCallbackPrefix, Value: prefix}
}

// Matches reports whether the matcher accepts the event.
func (m Matcher) Matches(ev event.Inbound) bool {
	switch m.Kind {
	case MatchCommand:
		return ev.Kind == event.KindCommand && ev.Command == m.Value
	case MatchText:
		return ev.Kind == event.KindText
	case MatchCallback:
		return ev.Kind == event.KindCallback && ev.Callback == m.Value
	case MatchCallbackPrefix:
		return ev.Kind == event.KindCallback && strings.HasPrefix(ev.Callback, m.Value)
	default:
		return false
	}
}

// valid reports whether the matcher is well-formed. MatchText carries no
// value; every other kind requires one.
func (m Matcher) valid() bool {
	switch m.Kind {
	case MatchText:
		return m.Value == ""
	case MatchCommand, MatchCallback, MatchCallbackPrefix:
		return m.Value != ""
	default:
		return false
	}
}

// equal reports whether two matchers describe the same pattern. Used for
// entry-trigger conflict detection.
func (m Matcher) equal(other Matcher) bool {
	return m.Kind == other.Kind && m.Value == other.Value
}

// String returns a short diagnostic form, e.g. `command "cancel"`.
func (m Matcher) String() string {
	switch m.Kind {
	case MatchCommand:
		return `command "` + m.Value + `"`
	case MatchText:
		return "any text"
	case MatchCallback:
		return `callback "` + m.Value + `"`
	case MatchCallbackPrefix:
		return `callback prefix "` + m.Value + `"`
	default:
		return "invalid matcher"
	}
}
