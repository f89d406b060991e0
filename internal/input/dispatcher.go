package input

import "busic/internal/engine"

// Dispatcher fans input events out to handlers in subscription order.
type Dispatcher struct {
	entries []entry
	nextID  uint64
}

type entry struct {
	id      uint64
	handler Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe adds h. Closing the returned subscription removes it.
func (d *Dispatcher) Subscribe(h Handler) *engine.Subscription {
	d.nextID++
	id := d.nextID
	d.entries = append(d.entries, entry{id: id, handler: h})
	return engine.NewSubscription(func() {
		for i, e := range d.entries {
			if e.id == id {
				d.entries = append(d.entries[:i:i], d.entries[i+1:]...)
				return
			}
		}
	})
}

func (d *Dispatcher) HandlerCount() int {
	return len(d.entries)
}

func (d *Dispatcher) PointerDown(e *PointerEvent) {
	d.each(func(h Handler) bool { h.PointerDown(e); return e.Handled })
}

func (d *Dispatcher) PointerMove(e *PointerEvent) {
	d.each(func(h Handler) bool { h.PointerMove(e); return e.Handled })
}

func (d *Dispatcher) PointerUp(e *PointerEvent) {
	// every handler sees a release so no gesture is left dangling
	d.each(func(h Handler) bool { h.PointerUp(e); return false })
}

// PointerLeave is delivered as a release.
func (d *Dispatcher) PointerLeave(e *PointerEvent) {
	e.Leave = true
	d.PointerUp(e)
}

func (d *Dispatcher) Wheel(e *WheelEvent) {
	d.each(func(h Handler) bool { h.Wheel(e); return e.Handled })
}

func (d *Dispatcher) each(fn func(Handler) bool) {
	entries := append([]entry(nil), d.entries...)
	for _, e := range entries {
		if fn(e.handler) {
			return
		}
	}
}
