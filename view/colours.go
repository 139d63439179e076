// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import "github.com/danielhkuo/pokepick/models"

// typeColours maps each creature type to its tag background.
var typeColours = map[string]string{
	models.TypeNormal:   "#A8A77A",
	models.TypeFire:     "#EE8130",
	models.TypeWater:    "#6390F0",
	models.TypeElectric: "#F7D02C",
	models.TypeGrass:    "#7AC74C",
	models.TypeIce:      "#96D9D6",
	models.TypeFighting: "#C22E28",
	models.TypePoison:   "#A33EA1",
	models.TypeGround:   "#E2BF65",
	models.TypeFlying:   "#A98FF3",
	models.TypePsychic:  "#F95587",
	models.TypeBug:      "#A6B91A",
	models.TypeRock:     "#B6A136",
	models.TypeGhost:    "#735797",
	models.TypeDragon:   "#6F35FC",
	models.TypeDark:     "#705746",
	models.TypeSteel:    "#B7B7CE",
	models.TypeFairy:    "#D685AD",
}

// unknownTypeColour is used for types outside the vocabulary.
const unknownTypeColour = "#777777"

// TypeColour returns the hex colour for a type tag.
func TypeColour(t string) string {
	if c, ok := typeColours[t]; ok {
		return c
	}
	return unknownTypeColour
}
