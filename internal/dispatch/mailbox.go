package dispatch

import (
	"healthbot/internal/event"
)

// mailbox is the per-account FIFO of pending events. Events for one
// account are processed strictly in arrival order by a single drain
// goroutine; different accounts drain fully in parallel.
//
// A mailbox exists only while its account has pending events: the drain
// goroutine removes the empty mailbox and exits, so idle accounts cost
// nothing.
type mailbox struct {
	events []event.Inbound
}

// enqueue appends the event to the account's mailbox, creating it (and
// starting its drain goroutine) if absent. Returns false if the
// dispatcher is closed.
func (d *Dispatcher) enqueue(ev event.Inbound) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}

	box, ok := d.boxes[ev.AccountID]
	if !ok {
		box = &mailbox{events: make([]event.Inbound, 0, 4)}
		d.boxes[ev.AccountID] = box
		d.pending.Add(1)
		go d.drain(ev.AccountID, box)
	}
	box.events = append(box.events, ev)
	return true
}

// drain processes the account's mailbox until it is empty, then removes
// it and exits. Exactly one drain goroutine runs per live mailbox, which
// is what serializes per-account event handling.
func (d *Dispatcher) drain(accountID int64, box *mailbox) {
	defer d.pending.Done()

	for {
		d.mu.Lock()
		if len(box.events) == 0 {
			delete(d.boxes, accountID)
			d.mu.Unlock()
			return
		}
		ev := box.events[0]
		// Nil out the slot so the backing array doesn't retain the
		// event's slices until reallocation.
		box.events[0] = event.Inbound{}
		box.events = box.events[1:]
		d.mu.Unlock()

		d.process(ev)
	}
}
