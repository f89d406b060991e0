package engine

// Subscription detaches a listener when closed. Closing twice is a no-op.
type Subscription struct {
	cancel func()
}

// NewSubscription wraps a detach function.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

func (s *Subscription) Close() {
	if s == nil || s.cancel == nil {
		return
	}
	cancel := s.cancel
	s.cancel = nil
	cancel()
}

// Event is a multi-cast event. Listeners are invoked in registration order.
type Event struct {
	listeners []listener[struct{}]
	nextID    uint64
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

// AddListener adds a callback to be invoked when the event fires
func (e *Event) AddListener(callback func()) *Subscription {
	if callback == nil {
		return NewSubscription(nil)
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[struct{}]{id: id, fn: func(struct{}) { callback() }})
	return NewSubscription(func() { e.listeners = remove(e.listeners, id) })
}

// RemoveAllListeners clears all listeners
func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners
func (e *Event) Invoke() {
	for _, l := range snapshot(e.listeners) {
		l.fn(struct{}{})
	}
}

func (e *Event) ListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a generic event with one argument
type EventWithArg[T any] struct {
	listeners []listener[T]
	nextID    uint64
}

func (e *EventWithArg[T]) AddListener(callback func(T)) *Subscription {
	if callback == nil {
		return NewSubscription(nil)
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, fn: callback})
	return NewSubscription(func() { e.listeners = remove(e.listeners, id) })
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range snapshot(e.listeners) {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) ListenerCount() int {
	return len(e.listeners)
}

// snapshot lets listeners unsubscribe while the event is firing.
func snapshot[T any](ls []listener[T]) []listener[T] {
	return append([]listener[T](nil), ls...)
}

func remove[T any](ls []listener[T], id uint64) []listener[T] {
	for i, l := range ls {
		if l.id == id {
			return append(ls[:i:i], ls[i+1:]...)
		}
	}
	return ls
}
