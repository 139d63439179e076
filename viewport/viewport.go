// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewport

import (
	"log/slog"
	"sync"
)

// Class names a group of markers observed together.
type Class string

const (
	Outer Class = "outer"
	Inner Class = "inner"
)

// Classes lists the observed marker classes.
var Classes = []Class{Outer, Inner}

// TargetClass is the visual class a marker of c gains when triggered.
func TargetClass(c Class) string {
	switch c {
	case Outer:
		return "outer-ring-animation"
	case Inner:
		return "inner-ring-animation"
	}
	return ""
}

// Marker is a tracked region of a card. Once triggered it stays triggered
// until the card is mounted again with a new Marker.
type Marker struct {
	ID    string
	Class Class

	mu        sync.Mutex
	triggered bool
}

// NewMarker returns an untriggered marker.
func NewMarker(id string, class Class) *Marker {
	return &Marker{ID: id, Class: class}
}

// Trigger marks the transition as done. Only the first call returns true.
func (m *Marker) Trigger() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.triggered {
		return false
	}
	m.triggered = true
	return true
}

// Triggered reports whether the transition has run.
func (m *Marker) Triggered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.triggered
}

// VisualClass returns the target class once triggered, "" before.
func (m *Marker) VisualClass() string {
	if !m.Triggered() {
		return ""
	}
	return TargetClass(m.Class)
}

// Observer watches the markers of one class.
type Observer struct {
	class     Class
	onTrigger func(*Marker)

	mu           sync.Mutex
	markers      map[string]*Marker
	disconnected bool
}

// NewObserver returns an Observer for markers of class. onTrigger may be nil.
func NewObserver(class Class, onTrigger func(*Marker)) *Observer {
	return &Observer{
		class:     class,
		onTrigger: onTrigger,
		markers:   map[string]*Marker{},
	}
}

// Observe adds markers of this observer's class. Other classes and calls
// after Disconnect are ignored.
func (o *Observer) Observe(markers ...*Marker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disconnected {
		return
	}
	for _, m := range markers {
		if m == nil || m.Class != o.class {
			continue
		}
		o.markers[m.ID] = m
	}
}

// Unobserve stops watching the marker with id.
func (o *Observer) Unobserve(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.markers, id)
}

// VisibilityChanged reports a visibility event for id and returns true if
// it triggered the marker's transition.
func (o *Observer) VisibilityChanged(id string, visible bool) bool {
	o.mu.Lock()
	m, ok := o.markers[id]
	live := !o.disconnected
	o.mu.Unlock()

	if !live || !ok || !visible {
		return false
	}
	if !m.Trigger() {
		return false
	}

	// Triggered markers need no further events
	o.Unobserve(id)
	if o.onTrigger != nil {
		o.onTrigger(m)
	}
	return true
}

// Len returns the number of markers still awaiting their trigger.
func (o *Observer) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.markers)
}

// Disconnect releases all markers. Later events are ignored.
func (o *Observer) Disconnect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.disconnected = true
	o.markers = map[string]*Marker{}
}

// Animator holds one Observer per class for the currently mounted cards.
type Animator struct {
	onTrigger func(*Marker)

	mu        sync.Mutex
	observers map[Class]*Observer
}

// New returns an Animator calling onTrigger after each first transition.
// onTrigger may be nil.
func New(onTrigger func(*Marker)) *Animator {
	a := &Animator{onTrigger: onTrigger}
	a.observers = a.fresh()
	return a
}

func (a *Animator) fresh() map[Class]*Observer {
	obs := make(map[Class]*Observer, len(Classes))
	for _, c := range Classes {
		obs[c] = NewObserver(c, a.onTrigger)
	}
	return obs
}

// Mount starts observing markers. Markers that already triggered are not
// observed again.
func (a *Animator) Mount(markers ...*Marker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, m := range markers {
		if m == nil || m.Triggered() {
			continue
		}
		if o, ok := a.observers[m.Class]; ok {
			o.Observe(m)
		} else {
			slog.Debug("unknown marker class", "id", m.ID, "class", m.Class)
		}
	}
}

// Unmount stops observing the markers with the given ids.
func (a *Animator) Unmount(ids ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, o := range a.observers {
		for _, id := range ids {
			o.Unobserve(id)
		}
	}
}

// Reset disconnects the current observers and observes markers with fresh
// ones. Used when the mounted card set changes.
func (a *Animator) Reset(markers ...*Marker) {
	a.mu.Lock()
	for _, o := range a.observers {
		o.Disconnect()
	}
	a.observers = a.fresh()
	a.mu.Unlock()

	a.Mount(markers...)
}

// VisibilityChanged forwards a visibility event to the observer watching
// id. It returns true if a transition fired.
func (a *Animator) VisibilityChanged(id string, visible bool) bool {
	a.mu.Lock()
	obs := make([]*Observer, 0, len(a.observers))
	for _, o := range a.observers {
		obs = append(obs, o)
	}
	a.mu.Unlock()

	for _, o := range obs {
		if o.VisibilityChanged(id, visible) {
			return true
		}
	}
	return false
}

// Pending returns the number of observed, untriggered markers.
func (a *Animator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, o := range a.observers {
		n += o.Len()
	}
	return n
}

// Disconnect tears down every observer.
func (a *Animator) Disconnect() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, o := range a.observers {
		o.Disconnect()
	}
}
