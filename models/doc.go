// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the data contracts shared by the catalog server and
the terminal client.

# Domain Types

  - CreatureSummary: name, image URL, 1-2 type tags, six-field stat block
  - Stats: hp, attack, defense, special-attack, special-defense, speed

A CreatureSummary is immutable once received. Name is the identifier and is
unique within a page.

# Response Types

  - PageResult: body of GET /api/pokemon/list (count, num_pages, data, page,
    search_query)
  - ImageResponse: img_url
  - RefreshResponse: count, updated_at
  - ErrorResponse: error, message

# Stat Maxima

Stat bars are scaled against fixed domain maxima:

	MaxHP             = 255
	MaxAttack         = 190
	MaxDefense        = 250
	MaxSpecialAttack  = 194
	MaxSpecialDefense = 250
	MaxSpeed          = 200

These are display hints only. Values above them are accepted as-is.

StatFields lists the stats in display order with their wire key, label and
maximum, so renderers can iterate instead of naming each field.

# Type Vocabulary

Types holds the 18 type names (normal, fire, water, ...). IsKnownType checks
membership.
*/
package models
