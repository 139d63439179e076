// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"strings"
	"testing"

	"github.com/danielhkuo/pokepick/models"
)

func pikachu() models.CreatureSummary {
	return models.CreatureSummary{
		Name:   "pikachu",
		ImgURL: "http://img.test/25.png",
		Types:  []string{models.TypeElectric},
		Stats:  models.Stats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90},
	}
}

func TestStatBarWidth(t *testing.T) {
	tests := []struct {
		name  string
		value int
		max   int
		want  float64
	}{
		{"zero", 0, 255, 0},
		{"half", 100, 200, 0.5},
		{"exactly max", 255, 255, 1},
		{"over max overflows", 300, 250, 1.2},
		{"no max", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatBarWidth(tt.value, tt.max); got != tt.want {
				t.Errorf("StatBarWidth(%d, %d) = %v, want %v", tt.value, tt.max, got, tt.want)
			}
		})
	}
}

func TestStatBarWidth_MonotonicAndFullAtMax(t *testing.T) {
	for _, f := range models.StatFields {
		prev := -1.0
		for v := 0; v <= f.Max+10; v++ {
			w := StatBarWidth(v, f.Max)
			if w < prev {
				t.Fatalf("%s: width decreased at %d", f.Key, v)
			}
			prev = w
			if v < f.Max && w >= 1 {
				t.Fatalf("%s: width reached 1 before max at %d", f.Key, v)
			}
		}
		if StatBarWidth(f.Max, f.Max) != 1 {
			t.Errorf("%s: expected width 1 at max", f.Key)
		}
	}
}

func TestCard_StatBars(t *testing.T) {
	c := pikachu()
	c.Stats.Speed = 250

	bars := NewCard(c, nil).StatBars()
	if len(bars) != 6 {
		t.Fatalf("expected 6 bars, got %d", len(bars))
	}
	if bars[0].Label != "HP" || bars[5].Label != "Speed" {
		t.Errorf("unexpected order: %s ... %s", bars[0].Label, bars[5].Label)
	}
	if bars[5].Width != 1.25 {
		t.Errorf("expected unclamped 1.25, got %v", bars[5].Width)
	}

	clamped := NewCard(c, nil, ClampStatBars()).StatBars()
	if clamped[5].Width != 1 {
		t.Errorf("expected clamped 1, got %v", clamped[5].Width)
	}
}

func TestCard_Select(t *testing.T) {
	var got []string
	card := NewCard(pikachu(), func(name string) { got = append(got, name) })

	card.Select()

	if len(got) != 1 || got[0] != "pikachu" {
		t.Errorf("expected one select of pikachu, got %v", got)
	}
}

func TestCard_FreshMarkersPerMount(t *testing.T) {
	first := NewCard(pikachu(), nil)
	first.Outer.Trigger()

	second := NewCard(pikachu(), nil)
	if second.Outer.Triggered() {
		t.Error("a new mount must start untriggered")
	}
	if second.Outer.ID != first.Outer.ID {
		t.Errorf("expected stable marker ids, got %s and %s", first.Outer.ID, second.Outer.ID)
	}
	if len(second.Markers()) != 2 {
		t.Errorf("expected 2 markers, got %d", len(second.Markers()))
	}
}

func TestSelectedIconURL(t *testing.T) {
	base := "https://img.pokemondb.net/sprites/sword-shield/icon/"
	if got := SelectedIconURL(base, "pikachu"); got != base+"pikachu.png" {
		t.Errorf("unexpected url %s", got)
	}
	if got := SelectedIconURL(base, ""); got != "" {
		t.Errorf("expected empty url for no selection, got %s", got)
	}
}

func TestRenderCard(t *testing.T) {
	card := NewCard(pikachu(), nil)

	out := RenderCard(card, "pikachu", "http://icons/")
	for _, want := range []string{"Pikachu", "selected", TypeColour(models.TypeElectric), "http://icons/pikachu.png", "Special Defense:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in card:\n%s", want, out)
		}
	}

	out = RenderCard(card, "", "http://icons/")
	if !strings.Contains(out, "Current pick:[::-] none") {
		t.Errorf("expected no pick, got:\n%s", out)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("mr-mime"); got != "Mr Mime" {
		t.Errorf("unexpected display name %q", got)
	}
}

func TestTypeColour(t *testing.T) {
	for _, typ := range models.Types {
		if TypeColour(typ) == unknownTypeColour {
			t.Errorf("missing colour for %s", typ)
		}
	}
	if TypeColour("shadow") != unknownTypeColour {
		t.Error("expected fallback colour for unknown type")
	}
}

type fixedHP int

func (f fixedHP) CurrentHP(models.CreatureSummary) int { return int(f) }

func TestHealthBar(t *testing.T) {
	tests := []struct {
		name    string
		hp      HPSource
		wantCur int
		wantStr string
	}{
		{"default full", nil, 35, "35/35"},
		{"damaged", fixedHP(7), 7, "7/35"},
		{"above max shown as given", fixedHP(50), 50, "50/35"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthBar(pikachu(), tt.hp)
			if h.CurrentHP != tt.wantCur || h.MaxHP != 35 {
				t.Errorf("unexpected bar %+v", h)
			}
			out := RenderHealthBar(h, 10)
			if !strings.Contains(out, tt.wantStr) {
				t.Errorf("expected %q in:\n%s", tt.wantStr, out)
			}
		})
	}
}

func TestRenderHealthBar_Colour(t *testing.T) {
	low := RenderHealthBar(HealthBar{Name: "a", CurrentHP: 1, MaxHP: 100}, 20)
	if !strings.Contains(low, "[red]") {
		t.Errorf("expected red bar, got %s", low)
	}
	full := RenderHealthBar(HealthBar{Name: "a", CurrentHP: 100, MaxHP: 100}, 20)
	if !strings.Contains(full, "[green]") {
		t.Errorf("expected green bar, got %s", full)
	}
}
