package domain

// FilterType distinguishes the two filter control shapes the client renders
// and the two predicate shapes discovery translates them into.
type FilterType string

const (
	FilterRange  FilterType = "range"
	FilterToggle FilterType = "toggle"
)

// Filter is the declarative descriptor for one discovery filter. The
// descriptor is static; only its value (a boolean or a numeric range)
// changes, persisted under Key by the filter state store.
type Filter struct {
	Key         string        `json:"filter_key"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
	Type        FilterType    `json:"type"`
	Options     FilterOptions `json:"options"`
}

// FilterOptions carries the range bounds for range filters and the profile
// column the predicate applies to.
type FilterOptions struct {
	Field string   `json:"field"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// RangeValue is a closed interval constraint on a numeric profile field.
type RangeValue struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filters is the registry of discovery filters the app knows about.
// Unknown keys arriving from a client are ignored by discovery.
var Filters = []Filter{
	{
		Key:         "budget",
		Label:       "Budget",
		Description: "Monthly budget range",
		Type:        FilterRange,
		Options:     FilterOptions{Field: "budget", Min: f(0), Max: f(5000)},
	},
	{
		Key:         "cleanliness",
		Label:       "Cleanliness",
		Description: "How tidy a flatmate should be",
		Type:        FilterRange,
		Options:     FilterOptions{Field: "cleanliness", Min: f(0), Max: f(10)},
	},
	{
		Key:         "social_level",
		Label:       "Social level",
		Description: "How social a flatmate should be",
		Type:        FilterRange,
		Options:     FilterOptions{Field: "social_level", Min: f(0), Max: f(10)},
	},
	{
		Key:         "smoker",
		Label:       "Smoker",
		Description: "Whether the candidate smokes",
		Type:        FilterToggle,
		Options:     FilterOptions{Field: "smoker"},
	},
	{
		Key:         "has_pets",
		Label:       "Pets",
		Description: "Whether the candidate has pets",
		Type:        FilterToggle,
		Options:     FilterOptions{Field: "has_pets"},
	},
}

// FilterByKey looks a descriptor up in the registry.
func FilterByKey(key string) (Filter, bool) {
	for _, flt := range Filters {
		if flt.Key == key {
			return flt, true
		}
	}
	return Filter{}, false
}

func f(v float64) *float64 { return &v }
