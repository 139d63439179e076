// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package viewport triggers one-shot appear transitions on card markers.

Each card carries two markers, one per Class. The Outer class gains
"outer-ring-animation" and the Inner class gains "inner-ring-animation" the
first time the marker becomes visible. Later visibility events for that
marker are ignored.

	a := viewport.New(func(m *viewport.Marker) { redraw(m.ID) })
	a.Reset(markersOfVisibleCards...)
	a.VisibilityChanged(id, true)
	defer a.Disconnect()

The host reports visibility through VisibilityChanged; the package does
not know how the host lays cards out. Reset replaces the observers when the
card set changes, and markers that already transitioned stay transitioned.
After Disconnect no callback fires.
*/
package viewport
