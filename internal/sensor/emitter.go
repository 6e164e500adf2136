// internal/sensor/emitter.go
package sensor

import (
	"sync"

	"github.com/tamzrod/mpr121d/internal/touch"
)

type subscription struct {
	id int
	fn Listener
}

// emitter is a synchronous fan-out for the data event.
// Listeners run on the publishing goroutine in subscription order.
type emitter struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

func (e *emitter) subscribe(fn Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { e.unsubscribe(id) })
	}
}

func (e *emitter) unsubscribe(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
			return
		}
	}
}

func (e *emitter) emit(s touch.Sample) {
	e.mu.RLock()
	subs := e.subs
	e.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(s)
	}
}

func (e *emitter) count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}
