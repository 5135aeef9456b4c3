// Package event defines the inbound event shapes consumed by the
// dispatcher. Events are tagged variants, not interfaces: the dispatcher
// and matchers switch on Kind, which keeps routing explicit and free of
// reflection.
package event

// Kind distinguishes inbound event variants.
type Kind int

const (
	// KindCommand is a slash command with optional arguments.
	KindCommand Kind = iota + 1
	// KindText is a free-text message.
	KindText
	// KindCallback is an opaque callback payload (button press equivalent).
	KindCallback
)

// Inbound is a single event from the transport, tagged with the account
// that produced it.
//
// ID is a correlation token stamped by the dispatcher on submission; the
// transport leaves it empty. Exactly one of the variant fields is
// meaningful, selected by Kind.
type Inbound struct {
	ID        string
	AccountID int64
	Kind      Kind

	// KindCommand
	Command string
	Args    []string

	// KindText
	Text string

	// KindCallback
	Callback string
}

// NewCommand builds a command event. The name is given without the
// leading slash.
func NewCommand(accountID int64, name string, args ...string) Inbound {
	return Inbound{AccountID: accountID, Kind: KindCommand, Command: name, Args: args}
}

// NewText builds a free-text event.
func NewText(accountID int64, body string) Inbound {
	return Inbound{AccountID: accountID, Kind: KindText, Text: body}
}

// NewCallback builds a callback event with opaque payload data.
func NewCallback(accountID int64, data string) Inbound {
	return Inbound{AccountID: accountID, Kind: KindCallback, Callback: data}
}
