// Package events provides one-way, named broadcasts from winlux operations to
// whatever presents state to the user.
package events

import (
	"sync"
)

// Name identifies a kind of event.
type Name string

const (
	// ThemeStateChanged carries the model.ThemeState after a theme write.
	ThemeStateChanged Name = "theme-state-changed"
	// SolarSettingsChanged carries the model.SolarSettings after a change.
	SolarSettingsChanged Name = "solar-settings-changed"
	// StartupStateChanged carries the model.StartupState after a change.
	StartupStateChanged Name = "startup-state-changed"
	// AutoThemeConfigurationRequired carries a message string; it is emitted
	// when auto-theme was requested but no location is saved.
	AutoThemeConfigurationRequired Name = "auto-theme-configuration-required"
)

// Event is a named broadcast with a payload.
type Event struct {
	Name    Name
	Payload any
}

// Bus fans events out to subscribers.
//
// Emit calls subscribers synchronously, in subscription order. Events nobody
// subscribed to are dropped.
type Bus struct {
	mutex       sync.RWMutex
	nextID      int
	subscribers map[Name][]subscriber
	all         []subscriber
}

type subscriber struct {
	id int
	f  func(Event)
}

// NewBus creates a new Bus.
func NewBus() *Bus {
	return &Bus{subscribers: map[Name][]subscriber{}}
}

// Subscribe registers f for events of the given name and returns a function
// removing the subscription.
func (b *Bus) Subscribe(name Name, f func(Event)) (unsubscribe func()) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	id := b.nextID
	b.nextID++
	b.subscribers[name] = append(b.subscribers[name], subscriber{id, f})
	return func() {
		b.mutex.Lock()
		defer b.mutex.Unlock()
		b.subscribers[name] = without(b.subscribers[name], id)
	}
}

// SubscribeAll registers f for events of any name.
func (b *Bus) SubscribeAll(f func(Event)) (unsubscribe func()) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	id := b.nextID
	b.nextID++
	b.all = append(b.all, subscriber{id, f})
	return func() {
		b.mutex.Lock()
		defer b.mutex.Unlock()
		b.all = without(b.all, id)
	}
}

// Emit broadcasts an event.
func (b *Bus) Emit(name Name, payload any) {
	b.mutex.RLock()
	targets := make([]subscriber, 0, len(b.subscribers[name])+len(b.all))
	targets = append(targets, b.subscribers[name]...)
	targets = append(targets, b.all...)
	b.mutex.RUnlock()

	e := Event{Name: name, Payload: payload}
	for _, s := range targets {
		s.f(e)
	}
}

func without(subscribers []subscriber, id int) []subscriber {
	result := make([]subscriber, 0, len(subscribers))
	for _, s := range subscribers {
		if s.id != id {
			result = append(result, s)
		}
	}
	return result
}
