package tasks

import "strings"

// Icon es el nombre lógico del ícono; el render decide cómo dibujarlo.
type Icon string

const (
	IconPaw         Icon = "paw"
	IconWalk        Icon = "walk"
	IconFood        Icon = "food"
	IconWater       Icon = "water"
	IconPill        Icon = "pill"
	IconStethoscope Icon = "stethoscope"
	IconSyringe     Icon = "syringe"
	IconScissors    Icon = "scissors"
	IconBall        Icon = "ball"
)

var iconByTag = map[string]Icon{
	"walk":       IconWalk,
	"food":       IconFood,
	"feeding":    IconFood,
	"meal":       IconFood,
	"water":      IconWater,
	"medication": IconPill,
	"meds":       IconPill,
	"pill":       IconPill,
	"vet":        IconStethoscope,
	"checkup":    IconStethoscope,
	"vaccine":    IconSyringe,
	"grooming":   IconScissors,
	"bath":       IconScissors,
	"play":       IconBall,
}

// IconFor elige el ícono a partir del primer tag.
func IconFor(firstTag string) Icon {
	if ic, ok := iconByTag[strings.ToLower(strings.TrimSpace(firstTag))]; ok {
		return ic
	}
	return IconPaw
}
