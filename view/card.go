// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/danielhkuo/pokepick/models"
	"github.com/danielhkuo/pokepick/viewport"
)

// DefaultBarCells is the width of a full stat bar in terminal cells.
const DefaultBarCells = 20

// StatBarWidth returns value/max. The result reaches exactly 1 at max and
// is not clamped, so stats above their maximum overflow the bar.
func StatBarWidth(value, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(value) / float64(max)
}

// StatBar is one row of a card's stat chart.
type StatBar struct {
	Label string
	Value int
	Max   int
	Width float64
}

// Option customizes a Card.
type Option func(*Card)

// ClampStatBars limits bar widths to [0, 1].
func ClampStatBars() Option {
	return func(c *Card) { c.clamp = true }
}

// WithBarCells sets the terminal width of a full bar.
func WithBarCells(n int) Option {
	return func(c *Card) {
		if n > 0 {
			c.barCells = n
		}
	}
}

// Card renders one catalog entry and carries its two viewport markers.
type Card struct {
	Creature models.CreatureSummary
	Outer    *viewport.Marker
	Inner    *viewport.Marker

	onSelect func(name string)
	clamp    bool
	barCells int
}

// NewCard mounts a card. Each call creates fresh markers.
func NewCard(c models.CreatureSummary, onSelect func(name string), opts ...Option) *Card {
	card := &Card{
		Creature: c,
		Outer:    viewport.NewMarker(c.Name+"/"+string(viewport.Outer), viewport.Outer),
		Inner:    viewport.NewMarker(c.Name+"/"+string(viewport.Inner), viewport.Inner),
		onSelect: onSelect,
		barCells: DefaultBarCells,
	}
	for _, opt := range opts {
		opt(card)
	}
	return card
}

// Markers returns the card's markers for registration with an Animator.
func (c *Card) Markers() []*viewport.Marker {
	return []*viewport.Marker{c.Outer, c.Inner}
}

// Select reports this card's creature as the new selection.
func (c *Card) Select() {
	if c.onSelect != nil {
		c.onSelect(c.Creature.Name)
	}
}

// StatBars returns the six stats in display order.
func (c *Card) StatBars() []StatBar {
	bars := make([]StatBar, 0, len(models.StatFields))
	for _, f := range models.StatFields {
		v := f.Value(c.Creature.Stats)
		w := StatBarWidth(v, f.Max)
		if c.clamp {
			w = min(max(w, 0), 1)
		}
		bars = append(bars, StatBar{Label: f.Label, Value: v, Max: f.Max, Width: w})
	}
	return bars
}

// SelectedIconURL builds the selection icon URL for name. An empty name
// yields "".
func SelectedIconURL(iconBase, name string) string {
	if name == "" {
		return ""
	}
	return iconBase + name + ".png"
}

// DisplayName title-cases a creature name for headings.
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

// RenderCard returns the card as tview-tagged text.
func RenderCard(c *Card, selectedName, iconBase string) string {
	var b strings.Builder

	name := tview.Escape(DisplayName(c.Creature.Name))
	switch {
	case c.Outer.Triggered() && c.Inner.Triggered():
		fmt.Fprintf(&b, "[black:red:b] (( %s )) [-:-:-]\n", name)
	case c.Outer.Triggered() || c.Inner.Triggered():
		fmt.Fprintf(&b, "[white:red:b] ( %s ) [-:-:-]\n", name)
	default:
		fmt.Fprintf(&b, "[::b]   %s   [-:-:-]\n", name)
	}
	if c.Creature.Name == selectedName && selectedName != "" {
		b.WriteString("[yellow]★ selected[-]\n")
	}
	fmt.Fprintf(&b, "[gray]%s[-]\n", tview.Escape(c.Creature.ImgURL))

	b.WriteString("[::b]Type:[::-]")
	for _, t := range c.Creature.Types {
		fmt.Fprintf(&b, " [black:%s] %s [-:-]", TypeColour(t), tview.Escape(t))
	}
	b.WriteString("\n[::b]Stats:[::-]\n")

	for _, bar := range c.StatBars() {
		fmt.Fprintf(&b, "%-16s %3d [green]%s[-]\n", bar.Label+":", bar.Value, barCells(bar.Width, c.barCells))
	}

	if icon := SelectedIconURL(iconBase, selectedName); icon != "" {
		fmt.Fprintf(&b, "[::b]Current pick:[::-] %s [gray]%s[-]\n", tview.Escape(selectedName), tview.Escape(icon))
	} else {
		b.WriteString("[::b]Current pick:[::-] none\n")
	}
	b.WriteString("[black:white] Select [-:-]\n")

	return b.String()
}

// barCells draws width*cells blocks. Overflow draws past cells.
func barCells(width float64, cells int) string {
	n := int(width*float64(cells) + 0.5)
	if n < 0 {
		n = 0
	}
	return strings.Repeat("█", n)
}
