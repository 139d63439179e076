// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/danielhkuo/pokepick/models"
)

// HealthBar is a fighter's name, image and hit points. CurrentHP is shown
// as given, even above MaxHP.
type HealthBar struct {
	Name      string
	Image     string
	CurrentHP int
	MaxHP     int
}

// HPSource reports a creature's current hit points.
type HPSource interface {
	CurrentHP(c models.CreatureSummary) int
}

// FullHP reports every creature at its maximum hp.
type FullHP struct{}

func (FullHP) CurrentHP(c models.CreatureSummary) int {
	return c.Stats.HP
}

// NewHealthBar builds a bar for c using hp for current hit points.
func NewHealthBar(c models.CreatureSummary, hp HPSource) HealthBar {
	if hp == nil {
		hp = FullHP{}
	}
	return HealthBar{
		Name:      c.Name,
		Image:     c.ImgURL,
		CurrentHP: hp.CurrentHP(c),
		MaxHP:     c.Stats.HP,
	}
}

// RenderHealthBar returns the bar as tview-tagged text, cells wide.
func RenderHealthBar(h HealthBar, cells int) string {
	if cells <= 0 {
		cells = DefaultBarCells
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-] [gray]%s[-]\n", tview.Escape(DisplayName(h.Name)), tview.Escape(h.Image))

	filled := 0
	if h.MaxHP > 0 {
		filled = int(float64(h.CurrentHP)/float64(h.MaxHP)*float64(cells) + 0.5)
	}
	filled = min(max(filled, 0), cells)

	colour := "green"
	switch {
	case filled*4 <= cells:
		colour = "red"
	case filled*2 <= cells:
		colour = "yellow"
	}

	fmt.Fprintf(&b, "Current HP: [%s]%s[-]%s %d/%d\n",
		colour, strings.Repeat("█", filled), strings.Repeat("░", cells-filled), h.CurrentHP, h.MaxHP)
	return b.String()
}
