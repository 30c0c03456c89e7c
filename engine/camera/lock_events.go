package camera

import "sync"

type lockEvent int

const (
	eventLock lockEvent = iota
	eventUnlock
)

type lockHandler struct {
	id int
	fn func()
}

// lockEmitter dispatches lock and unlock notifications to registered callbacks in registration order.
// Callbacks run on the goroutine that emits and may register or cancel other callbacks.
type lockEmitter struct {
	mu       sync.Mutex
	nextID   int
	handlers map[lockEvent][]lockHandler
}

func newLockEmitter() *lockEmitter {
	return &lockEmitter{
		handlers: make(map[lockEvent][]lockHandler),
	}
}

func (e *lockEmitter) on(ev lockEvent, fn func()) func() {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.handlers[ev] = append(e.handlers[ev], lockHandler{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			hs := e.handlers[ev]
			for i, h := range hs {
				if h.id == id {
					e.handlers[ev] = append(hs[:i:i], hs[i+1:]...)
					return
				}
			}
		})
	}
}

func (e *lockEmitter) emit(ev lockEvent) {
	e.mu.Lock()
	hs := make([]lockHandler, len(e.handlers[ev]))
	copy(hs, e.handlers[ev])
	e.mu.Unlock()

	for _, h := range hs {
		h.fn()
	}
}
