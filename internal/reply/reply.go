// Package reply holds the outbound reply model. A Reply is text plus an
// enumerated set of labeled next-events; rendering to transport markup
// (inline keyboards, HTML) is the transport adapter's job.
package reply

import (
	"fmt"
	"strings"
)

// Action is one labeled next-event the user may take. Event is the
// callback payload the transport should send back when the action is
// chosen.
type Action struct {
	Label string
	Event string
}

// Reply is a structured response for one account.
type Reply struct {
	AccountID int64
	Text      string
	Actions   []Action
}

// Text builds a plain reply with no actions.
func Text(accountID int64, text string) *Reply {
	return &Reply{AccountID: accountID, Text: text}
}

// Textf builds a plain reply from a format string.
func Textf(accountID int64, format string, args ...any) *Reply {
	return &Reply{AccountID: accountID, Text: fmt.Sprintf(format, args...)}
}

// WithActions returns the reply with the action set replaced.
func (r *Reply) WithActions(actions ...Action) *Reply {
	r.Actions = actions
	return r
}

// Render produces a stable plain-text form of the reply: the text
// followed by one line per action. Used by the console transport and by
// golden tests; real transports render Actions as buttons instead.
func (r *Reply) Render() string {
	var b strings.Builder
	b.WriteString(r.Text)
	b.WriteString("\n")
	for _, a := range r.Actions {
		fmt.Fprintf(&b, "[%s] -> %s\n", a.Label, a.Event)
	}
	return b.String()
}
