// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package emitter

import (
	"sync"

	"github.com/aungmawjj/carbon-ledger/core"
)

// Filter selects the events delivered to a subscription
type Filter func(e *core.Event) bool

// Names accepts events with one of the given names, or every event when names is empty
func Names(names ...string) Filter {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return func(e *core.Event) bool {
		_, ok := set[e.Name]
		return ok
	}
}

// Subscription type
type Subscription struct {
	onRemove func(s *Subscription)
	ch       chan *core.Event
	filter   Filter
	once     sync.Once
}

// Events returns the channel of delivered events, closed on Unsubscribe
func (s *Subscription) Events() <-chan *core.Event {
	return s.ch
}

// Unsubscribe stops getting new events
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.onRemove(s)
		close(s.ch)
	})
}

// emit never blocks, it reports false when the event is dropped
func (s *Subscription) emit(event *core.Event) bool {
	if s.filter != nil && !s.filter(event) {
		return true
	}
	select {
	case s.ch <- event:
		return true
	default:
		return false
	}
}

// Emitter publishes committed domain events to subscribers
type Emitter struct {
	mtx           sync.RWMutex
	subscriptions map[*Subscription]struct{}
}

// New creates a new Emitter
func New() *Emitter {
	return &Emitter{
		subscriptions: make(map[*Subscription]struct{}),
	}
}

// Subscribe create a new subscription for the given event names, all events if none given
func (e *Emitter) Subscribe(buffer int, names ...string) *Subscription {
	s := &Subscription{
		onRemove: e.delete,
		ch:       make(chan *core.Event, max(buffer, 5)),
		filter:   Names(names...),
	}
	e.add(s)
	return s
}

func max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func (e *Emitter) add(s *Subscription) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	e.subscriptions[s] = struct{}{}
}

func (e *Emitter) delete(s *Subscription) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	delete(e.subscriptions, s)
}

// Emit sends events in order to all subscriptions and returns the number of dropped deliveries
func (e *Emitter) Emit(events ...*core.Event) int {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	dropped := 0
	for _, event := range events {
		for s := range e.subscriptions {
			if !s.emit(event) {
				dropped++
			}
		}
	}
	return dropped
}

// Count returns the number of active subscriptions
func (e *Emitter) Count() int {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return len(e.subscriptions)
}
