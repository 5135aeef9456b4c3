// Package dispatch multiplexes the global inbound event stream into
// per-account conversation sessions. The dispatcher resolves each event
// against the active session or the registry's entry triggers, runs the
// access guard, executes the matched handler, commits the session
// transition, and delivers the reply.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"healthbot/internal/event"
	"healthbot/internal/flow"
	"healthbot/internal/guard"
	"healthbot/internal/reply"
	"healthbot/internal/session"
)

// ReplySink receives outbound replies. The transport adapter (Telegram,
// console, test capture) implements it.
type ReplySink interface {
	Deliver(ctx context.Context, r reply.Reply) error
}

// SinkFunc adapts a function to ReplySink.
type SinkFunc func(ctx context.Context, r reply.Reply) error

// Deliver calls f.
func (f SinkFunc) Deliver(ctx context.Context, r reply.Reply) error {
	return f(ctx, r)
}

// Config wires a Dispatcher.
type Config struct {
	Registry *flow.Registry
	Sessions *session.Store
	Guard    *guard.Guard
	Accounts guard.AccountSource
	Sink     ReplySink

	// Tokens stamps correlation ids; defaults to UUIDv7Generator.
	Tokens TokenGenerator

	// HandlerTimeout bounds one handler invocation including its store
	// operations. Defaults to 5s. A timeout is a store-level error: the
	// session stays unchanged and the user gets the generic failure
	// reply.
	HandlerTimeout time.Duration

	// SessionTTL clears sessions idle longer than this. Zero (the
	// default) means sessions never expire.
	SessionTTL time.Duration
}

// Dispatcher routes inbound events. Create with New, feed with Submit,
// optionally Run for the idle-session janitor, and Close to drain.
type Dispatcher struct {
	registry *flow.Registry
	sessions *session.Store
	guard    *guard.Guard
	accounts guard.AccountSource
	sink     ReplySink
	tokens   TokenGenerator
	timeout  time.Duration
	ttl      time.Duration

	ctx context.Context

	mu      sync.Mutex
	boxes   map[int64]*mailbox
	closed  bool
	pending sync.WaitGroup
}

// New builds a dispatcher from the config.
func New(cfg Config) (*Dispatcher, error) {
	if cfg.Registry == nil || cfg.Sessions == nil || cfg.Guard == nil || cfg.Accounts == nil || cfg.Sink == nil {
		return nil, fmt.Errorf("dispatcher config: registry, sessions, guard, accounts and sink are required")
	}

	d := &Dispatcher{
		registry: cfg.Registry,
		sessions: cfg.Sessions,
		guard:    cfg.Guard,
		accounts: cfg.Accounts,
		sink:     cfg.Sink,
		tokens:   cfg.Tokens,
		timeout:  cfg.HandlerTimeout,
		ttl:      cfg.SessionTTL,
		ctx:      context.Background(),
		boxes:    make(map[int64]*mailbox),
	}
	if d.tokens == nil {
		d.tokens = UUIDv7Generator{}
	}
	if d.timeout <= 0 {
		d.timeout = 5 * time.Second
	}
	return d, nil
}

// Submit enqueues an inbound event for processing. Thread-safe; events
// for one account are processed in submission order. Returns false once
// the dispatcher is closed.
func (d *Dispatcher) Submit(ev event.Inbound) bool {
	ev.ID = d.tokens.Generate()
	return d.enqueue(ev)
}

// Run blocks until ctx is cancelled, sweeping idle sessions when a TTL
// is configured. Handlers submitted after Run starts use ctx as their
// base context.
func (d *Dispatcher) Run(ctx context.Context) {
	d.mu.Lock()
	d.ctx = ctx
	d.mu.Unlock()

	slog.Info("dispatcher running", "session_ttl", d.ttl.String())

	if d.ttl <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(d.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := d.sessions.ExpireIdle(d.ttl); n > 0 {
				slog.Info("expired idle sessions", "count", n)
			}
		}
	}
}

// Close stops accepting events and waits for every mailbox to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.pending.Wait()
}

// Flush waits until all currently queued events have been processed.
// Test hook; production code relies on Close.
func (d *Dispatcher) Flush() {
	d.pending.Wait()
}

// resolution describes where an event routed.
type resolution struct {
	flowID    string
	trans     flow.Transition
	scratch   map[string]string
	unhandled bool
}

// resolve applies the trigger precedence: active-state transitions,
// flow-local fallbacks, global fallbacks, entry triggers (re-entrant
// start), then the unhandled responder.
func (d *Dispatcher) resolve(ev event.Inbound) resolution {
	sess, active := d.sessions.Get(ev.AccountID)

	if active {
		if f, ok := d.registry.Flow(sess.FlowID); ok {
			for _, t := range f.States[sess.StateID] {
				if t.Match.Matches(ev) {
					return resolution{flowID: f.ID, trans: t, scratch: sess.Scratch}
				}
			}
			for _, t := range f.Fallbacks {
				if t.Match.Matches(ev) {
					return resolution{flowID: f.ID, trans: t, scratch: sess.Scratch}
				}
			}
		}
	}

	for _, t := range d.registry.Globals() {
		if t.Match.Matches(ev) {
			return resolution{flowID: sess.FlowID, trans: t, scratch: sess.Scratch}
		}
	}

	if f, t, ok := d.registry.ResolveEntry(ev); ok {
		// Re-entrant start: any prior session is discarded along with
		// its scratch data.
		return resolution{flowID: f.ID, trans: t, scratch: map[string]string{}}
	}

	return resolution{unhandled: true}
}

// process handles one event end to end. Called from the account's drain
// goroutine only.
func (d *Dispatcher) process(ev event.Inbound) {
	d.mu.Lock()
	base := d.ctx
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(base, d.timeout)
	defer cancel()

	res := d.resolve(ev)

	if res.unhandled {
		d.deliver(ctx, d.respondUnhandled(ctx, ev))
		return
	}

	if !res.trans.SkipGuard {
		decision, denial, err := d.guard.Check(ctx, ev.AccountID, res.flowID)
		if err != nil {
			d.failStep(ctx, ev, "access check failed", err)
			return
		}
		if decision == guard.Denied {
			slog.Info("access denied",
				"event_id", ev.ID,
				"account", ev.AccountID,
				"flow", res.flowID,
			)
			d.deliver(ctx, denial)
			return
		}
	}

	req := &flow.Request{
		AccountID: ev.AccountID,
		Event:     ev,
		Scratch:   res.scratch,
	}
	if req.Scratch == nil {
		req.Scratch = map[string]string{}
	}

	result, err := res.trans.Handler(ctx, req)
	if err != nil {
		// Store-level failure: the session is left unchanged so the
		// user can retry the same step safely.
		d.failStep(ctx, ev, "handler failed", err)
		return
	}

	if result.Next == flow.Terminal {
		d.sessions.Clear(ev.AccountID)
	} else {
		d.sessions.Set(ev.AccountID, res.flowID, result.Next, req.Scratch)
	}

	slog.Debug("step committed",
		"event_id", ev.ID,
		"account", ev.AccountID,
		"flow", res.flowID,
		"next_state", string(result.Next),
	)

	d.deliver(ctx, result.Reply)
}

const genericFailureText = "Something went wrong on our side. Please try again."

func (d *Dispatcher) failStep(ctx context.Context, ev event.Inbound, msg string, err error) {
	slog.Error(msg,
		"error", err,
		"event_id", ev.ID,
		"account", ev.AccountID,
	)
	d.deliver(ctx, reply.Text(ev.AccountID, genericFailureText))
}

const (
	unhandledBannedText = "Access denied: your account has been blocked."
	unhandledUnregText  = "I don't recognize that. Send /register to create your account first."
	unhandledText       = "I don't recognize that. Send /start to see the main menu."
)

// respondUnhandled answers events that matched nothing, differentiating
// banned, unregistered and ordinary accounts. Routing misses are never
// fatal.
func (d *Dispatcher) respondUnhandled(ctx context.Context, ev event.Inbound) *reply.Reply {
	banned, err := d.accounts.IsBanned(ctx, ev.AccountID)
	if err != nil {
		slog.Error("unhandled responder: account lookup failed", "error", err, "account", ev.AccountID)
		return reply.Text(ev.AccountID, genericFailureText)
	}
	if banned {
		return reply.Text(ev.AccountID, unhandledBannedText)
	}

	registered, err := d.accounts.IsRegistered(ctx, ev.AccountID)
	if err != nil {
		slog.Error("unhandled responder: account lookup failed", "error", err, "account", ev.AccountID)
		return reply.Text(ev.AccountID, genericFailureText)
	}
	if !registered {
		return reply.Text(ev.AccountID, unhandledUnregText)
	}
	return reply.Text(ev.AccountID, unhandledText)
}

func (d *Dispatcher) deliver(ctx context.Context, r *reply.Reply) {
	if r == nil {
		return
	}
	if err := d.sink.Deliver(ctx, *r); err != nil {
		slog.Error("reply delivery failed", "error", err, "account", r.AccountID)
	}
}
