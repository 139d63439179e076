package models

import "time"

// Domain maxima used to scale stat bars. They are display hints, not limits:
// a stat above its maximum is still a valid value.
const (
	MaxHP             = 255
	MaxAttack         = 190
	MaxDefense        = 250
	MaxSpecialAttack  = 194
	MaxSpecialDefense = 250
	MaxSpeed          = 200
)

// Creature types
const (
	TypeNormal   = "normal"
	TypeFire     = "fire"
	TypeWater    = "water"
	TypeElectric = "electric"
	TypeGrass    = "grass"
	TypeIce      = "ice"
	TypeFighting = "fighting"
	TypePoison   = "poison"
	TypeGround   = "ground"
	TypeFlying   = "flying"
	TypePsychic  = "psychic"
	TypeBug      = "bug"
	TypeRock     = "rock"
	TypeGhost    = "ghost"
	TypeDragon   = "dragon"
	TypeDark     = "dark"
	TypeSteel    = "steel"
	TypeFairy    = "fairy"
)

// Types lists the closed type vocabulary in canonical order.
var Types = []string{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

// IsKnownType reports whether t belongs to the type vocabulary.
func IsKnownType(t string) bool {
	for _, known := range Types {
		if known == t {
			return true
		}
	}
	return false
}

// Domain types

type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special-attack"`
	SpecialDefense int `json:"special-defense"`
	Speed          int `json:"speed"`
}

// StatField describes one of the six stats for display.
type StatField struct {
	Key   string // wire name
	Label string
	Max   int
	Value func(Stats) int
}

// StatFields lists the six stats in display order.
var StatFields = []StatField{
	{Key: "hp", Label: "HP", Max: MaxHP, Value: func(s Stats) int { return s.HP }},
	{Key: "attack", Label: "Attack", Max: MaxAttack, Value: func(s Stats) int { return s.Attack }},
	{Key: "defense", Label: "Defense", Max: MaxDefense, Value: func(s Stats) int { return s.Defense }},
	{Key: "special-attack", Label: "Special Attack", Max: MaxSpecialAttack, Value: func(s Stats) int { return s.SpecialAttack }},
	{Key: "special-defense", Label: "Special Defense", Max: MaxSpecialDefense, Value: func(s Stats) int { return s.SpecialDefense }},
	{Key: "speed", Label: "Speed", Max: MaxSpeed, Value: func(s Stats) int { return s.Speed }},
}

// Set assigns a stat by its wire name. Unknown names are ignored and
// reported as false.
func (s *Stats) Set(key string, value int) bool {
	switch key {
	case "hp":
		s.HP = value
	case "attack":
		s.Attack = value
	case "defense":
		s.Defense = value
	case "special-attack":
		s.SpecialAttack = value
	case "special-defense":
		s.SpecialDefense = value
	case "speed":
		s.Speed = value
	default:
		return false
	}
	return true
}

// CreatureSummary is one catalog entry. Name is unique within a page.
type CreatureSummary struct {
	Index  int      `json:"index,omitempty"` // 1-based position in the full catalog
	Name   string   `json:"name"`
	URL    string   `json:"url,omitempty"` // upstream detail URL
	ImgURL string   `json:"img_url"`
	Types  []string `json:"types"`
	Stats  Stats    `json:"stats"`
}

// Hydrated reports whether stats and types have been filled in.
func (c CreatureSummary) Hydrated() bool {
	return len(c.Types) > 0
}

// Response types

// PageResult is the body of GET /api/pokemon/list.
type PageResult struct {
	Count       int               `json:"count"`
	NumPages    int               `json:"num_pages"`
	Data        []CreatureSummary `json:"data"`
	Page        int               `json:"page"`
	SearchQuery string            `json:"search_query"`
}

type ImageResponse struct {
	ImgURL string `json:"img_url"`
}

type RefreshResponse struct {
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
