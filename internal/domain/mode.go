package domain

// Mode partitions profiles, interactions and connections into discovery
// contexts: looking for a room vs looking for a person.
type Mode string

const (
	ModeHousing  Mode = "housing"
	ModeFlatmate Mode = "flatmate"
)

func (m Mode) Valid() bool {
	return m == ModeHousing || m == ModeFlatmate
}

// InteractionType is the direction of a swipe.
type InteractionType string

const (
	InteractionLike    InteractionType = "like"
	InteractionDislike InteractionType = "dislike"
)

func (t InteractionType) Valid() bool {
	return t == InteractionLike || t == InteractionDislike
}
