// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package view renders catalog cards and fight health bars as tview text.

# Cards

NewCard mounts one creature. Each mount gets fresh Outer and Inner viewport
markers; RenderCard draws the name ring according to which of them have
triggered.

	card := view.NewCard(c, ctrl.Select)
	text := view.RenderCard(card, state.SelectedName, cfg.IconBase)

Stat bars are value/max with the domain maxima from models. Bars are not
clamped, so a stat above its maximum draws past the bar; pass
ClampStatBars to cap them.

# Health Bars

HealthBar shows name, image and current/max hit points. Current hit points
come from an HPSource. FullHP is used when nothing else computes damage.
*/
package view
