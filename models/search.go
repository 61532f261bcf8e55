package models

// PriceRange bounds are inclusive on both ends.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchFilters is a client-side query descriptor; it is never persisted.
// A zero value matches every listing.
type SearchFilters struct {
	PropertyType    PropertyType `json:"propertyType,omitempty"`
	TransactionType PriceType    `json:"transactionType,omitempty"`
	Location        string       `json:"location,omitempty"`
	PriceRange      *PriceRange  `json:"priceRange,omitempty"`
	Bedrooms        *int         `json:"bedrooms,omitempty"`
	Keywords        string       `json:"keywords,omitempty"`
}
