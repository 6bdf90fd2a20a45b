package model

// Entity is one typed match found in the input text.
// Start and End are character (rune) offsets, End exclusive.
type Entity struct {
	Body   string    `json:"body"`
	Start  int       `json:"start"`
	End    int       `json:"end"`
	Dim    Dimension `json:"dim"`
	Latent bool      `json:"latent"`
	Value  Value     `json:"value"`
}

// Grounded reports whether the entity is a certain parse
func (e Entity) Grounded() bool {
	return !e.Latent
}

// Overlaps reports whether both entities cover a common character
func (e Entity) Overlaps(other Entity) bool {
	return e.Start < other.End && other.Start < e.End
}

// EntitiesByDimension groups entities by dimension keeping their order
func EntitiesByDimension(entities []Entity) map[Dimension][]Entity {
	grouped := make(map[Dimension][]Entity)
	for _, e := range entities {
		grouped[e.Dim] = append(grouped[e.Dim], e)
	}
	return grouped
}
