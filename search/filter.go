// Package search filters listings that have already been fetched from the
// store. The store can only push down equality on propertyType and priceType,
// so substring, range and multi-field matching happen here.
package search

import (
	"strings"

	"github.com/UShishir5355t/real-estate-mvp/models"
)

type predicate func(p *models.Property) bool

// ApplyFilters returns the listings matching every present dimension of f, in
// their original order. It never fails and never validates f.
func ApplyFilters(properties []models.Property, f models.SearchFilters) []models.Property {
	preds := compile(f)
	out := make([]models.Property, 0, len(properties))
	for i := range properties {
		if matchAll(&properties[i], preds) {
			out = append(out, properties[i])
		}
	}
	return out
}

func matchAll(p *models.Property, preds []predicate) bool {
	for _, pred := range preds {
		if !pred(p) {
			return false
		}
	}
	return true
}

func compile(f models.SearchFilters) []predicate {
	var preds []predicate

	if f.PropertyType != "" {
		want := f.PropertyType
		preds = append(preds, func(p *models.Property) bool {
			return p.PropertyType == want
		})
	}
	if f.TransactionType != "" {
		want := f.TransactionType
		preds = append(preds, func(p *models.Property) bool {
			return p.PriceType == want
		})
	}
	if loc := fold(f.Location); loc != "" {
		preds = append(preds, func(p *models.Property) bool {
			return contains(p.Location.Area, loc) || contains(p.Location.Address, loc)
		})
	}
	if f.PriceRange != nil {
		lo, hi := f.PriceRange.Min, f.PriceRange.Max
		preds = append(preds, func(p *models.Property) bool {
			return lo <= p.Price && p.Price <= hi
		})
	}
	if f.Bedrooms != nil {
		want := *f.Bedrooms
		preds = append(preds, func(p *models.Property) bool {
			return p.Details.Bedrooms == want
		})
	}
	if kw := fold(f.Keywords); kw != "" {
		preds = append(preds, func(p *models.Property) bool {
			return contains(p.Title, kw) || contains(p.Description, kw) || contains(p.Location.Area, kw)
		})
	}
	return preds
}

// fold trims and lower-cases a filter string; blank means the dimension is absent.
func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(field, folded string) bool {
	return strings.Contains(strings.ToLower(field), folded)
}
