// Package playback drives a first-person controller from scripted input without a window.
package playback

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fpcam/engine/camera"
)

// Surface is an in-memory camera.InputSurface. Lock requests are granted (or refused) synchronously,
// and input is injected through its methods.
type Surface struct {
	mu        sync.Mutex
	listeners map[int]camera.InputListener
	order     []int
	nextID    int
	locked    bool
	refuse    bool
}

var _ camera.InputSurface = &Surface{}

func NewSurface() *Surface {
	return &Surface{listeners: make(map[int]camera.InputListener)}
}

func (s *Surface) Subscribe(l camera.InputListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// RequestPointerLock grants the lock unless RefuseLock is set. Repeated requests while locked are ignored.
func (s *Surface) RequestPointerLock() {
	s.mu.Lock()
	if s.locked || s.refuse {
		s.mu.Unlock()
		return
	}
	s.locked = true
	s.mu.Unlock()
	s.each(func(l camera.InputListener) { l.OnPointerLockChange(true) })
}

func (s *Surface) ExitPointerLock() {
	s.mu.Lock()
	if !s.locked {
		s.mu.Unlock()
		return
	}
	s.locked = false
	s.mu.Unlock()
	s.each(func(l camera.InputListener) { l.OnPointerLockChange(false) })
}

// RefuseLock makes later lock requests fail silently, as a platform without pointer capture would.
func (s *Surface) RefuseLock(refuse bool) {
	s.mu.Lock()
	s.refuse = refuse
	s.mu.Unlock()
}

func (s *Surface) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

func (s *Surface) KeyDown(code uint32) {
	s.each(func(l camera.InputListener) { l.OnKeyDown(code) })
}

func (s *Surface) KeyUp(code uint32) {
	s.each(func(l camera.InputListener) { l.OnKeyUp(code) })
}

func (s *Surface) Move(dx, dy float32) {
	s.each(func(l camera.InputListener) { l.OnPointerMove(dx, dy) })
}

// each calls fn for every listener in subscription order, outside the lock.
func (s *Surface) each(fn func(camera.InputListener)) {
	s.mu.Lock()
	ls := make([]camera.InputListener, 0, len(s.order))
	for _, id := range s.order {
		ls = append(ls, s.listeners[id])
	}
	s.mu.Unlock()
	for _, l := range ls {
		fn(l)
	}
}

// Clock is a manually advanced time source for camera.WithClock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
