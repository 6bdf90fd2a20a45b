package model

import "strings"

// Dimension is a category of extractable entity
type Dimension string

const (
	DimensionAmountOfMoney    Dimension = "amount-of-money"
	DimensionCreditCardNumber Dimension = "credit-card-number"
	DimensionDistance         Dimension = "distance"
	DimensionDuration         Dimension = "duration"
	DimensionEmail            Dimension = "email"
	DimensionNumber           Dimension = "number"
	DimensionOrdinal          Dimension = "ordinal"
	DimensionPhoneNumber      Dimension = "phone-number"
	DimensionQuantity         Dimension = "quantity"
	DimensionTemperature      Dimension = "temperature"
	DimensionTime             Dimension = "time"
	DimensionTimeGrain        Dimension = "time-grain"
	DimensionURL              Dimension = "url"
	DimensionVolume           Dimension = "volume"
)

var allDimensions = []Dimension{
	DimensionAmountOfMoney,
	DimensionCreditCardNumber,
	DimensionDistance,
	DimensionDuration,
	DimensionEmail,
	DimensionNumber,
	DimensionOrdinal,
	DimensionPhoneNumber,
	DimensionQuantity,
	DimensionTemperature,
	DimensionTime,
	DimensionTimeGrain,
	DimensionURL,
	DimensionVolume,
}

var dimensionSet = func() map[Dimension]bool {
	set := make(map[Dimension]bool, len(allDimensions))
	for _, d := range allDimensions {
		set[d] = true
	}
	return set
}()

// AllDimensions returns every known dimension in canonical order
func AllDimensions() []Dimension {
	dims := make([]Dimension, len(allDimensions))
	copy(dims, allDimensions)
	return dims
}

// ParseDimension resolves a single dimension name
func ParseDimension(name string) (Dimension, bool) {
	dim := Dimension(strings.ToLower(strings.TrimSpace(name)))
	return dim, dimensionSet[dim]
}

// ParseDimensions maps names to dimensions, dropping unknown names.
// Order and duplicates of the recognized names are preserved.
func ParseDimensions(names []string) []Dimension {
	dims := make([]Dimension, 0, len(names))
	for _, name := range names {
		if dim, ok := ParseDimension(name); ok {
			dims = append(dims, dim)
		}
	}
	return dims
}

// UniqueDimensions removes repeated dimensions keeping the first occurrence
func UniqueDimensions(dims []Dimension) []Dimension {
	seen := make(map[Dimension]bool, len(dims))
	unique := make([]Dimension, 0, len(dims))
	for _, d := range dims {
		if seen[d] {
			continue
		}
		seen[d] = true
		unique = append(unique, d)
	}
	return unique
}

// IsValid reports whether d belongs to the known set
func (d Dimension) IsValid() bool {
	return dimensionSet[d]
}

func (d Dimension) String() string {
	return string(d)
}
