package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UShishir5355t/real-estate-mvp/models"
)

func intPtr(v int) *int { return &v }

func fixtures() []models.Property {
	return []models.Property{
		{
			ID: "p1", Title: "2BHK Flat", Description: "Sea facing, semi furnished",
			Price: 25000, PriceType: models.PriceTypeRent, PropertyType: models.PropertyTypeFlat,
			Location: models.Location{Address: "14 Hill Road", Area: "Bandra West", City: "Mumbai"},
			Details:  models.Details{Bedrooms: 2, Bathrooms: 2, Area: 900},
		},
		{
			ID: "p2", Title: "Independent House", Description: "Garden and parking",
			Price: 9500000, PriceType: models.PriceTypeSale, PropertyType: models.PropertyTypeHouse,
			Location: models.Location{Address: "Lane 5, Koregaon Park", Area: "Koregaon Park", City: "Pune"},
			Details:  models.Details{Bedrooms: 4, Bathrooms: 3, Area: 2400},
		},
		{
			ID: "p3", Title: "Office Space", Description: "Fully furnished office",
			Price: 50000, PriceType: models.PriceTypeRent, PropertyType: models.PropertyTypeCommercial,
			Location: models.Location{Address: "BKC, Bandra East", Area: "BKC", City: "Mumbai"},
			Details:  models.Details{Bedrooms: 0, Bathrooms: 1, Area: 1500},
		},
		{
			ID: "p4", Title: "1RK Studio", Description: "Compact",
			Price: 50000, PriceType: models.PriceTypeRent, PropertyType: models.PropertyTypeFlat,
			Location: models.Location{Address: "Andheri", Area: "Andheri West", City: "Mumbai"},
			Details:  models.Details{Bedrooms: 1, Bathrooms: 1, Area: 350},
		},
	}
}

func ids(ps []models.Property) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestApplyFilters_EmptyFiltersIsIdentity(t *testing.T) {
	in := fixtures()
	out := ApplyFilters(in, models.SearchFilters{})
	assert.Equal(t, in, out)
}

func TestApplyFilters_EmptyInput(t *testing.T) {
	out := ApplyFilters(nil, models.SearchFilters{Keywords: "flat"})
	assert.Empty(t, out)
}

func TestApplyFilters_Dimensions(t *testing.T) {
	cases := []struct {
		name    string
		filters models.SearchFilters
		want    []string
	}{
		{"property type", models.SearchFilters{PropertyType: models.PropertyTypeFlat}, []string{"p1", "p4"}},
		{"transaction type", models.SearchFilters{TransactionType: models.PriceTypeSale}, []string{"p2"}},
		{"location matches area case-insensitively", models.SearchFilters{Location: "bandra"}, []string{"p1", "p3"}},
		{"location matches address", models.SearchFilters{Location: "hill road"}, []string{"p1"}},
		{"price range inclusive", models.SearchFilters{PriceRange: &models.PriceRange{Min: 25000, Max: 50000}}, []string{"p1", "p3", "p4"}},
		{"bedrooms exact", models.SearchFilters{Bedrooms: intPtr(2)}, []string{"p1"}},
		{"bedrooms zero is a real constraint", models.SearchFilters{Bedrooms: intPtr(0)}, []string{"p3"}},
		{"keywords in title", models.SearchFilters{Keywords: "STUDIO"}, []string{"p4"}},
		{"keywords in area", models.SearchFilters{Keywords: "koregaon"}, []string{"p2"}},
		{"conjunction", models.SearchFilters{PropertyType: models.PropertyTypeFlat, Location: "west", Bedrooms: intPtr(1)}, []string{"p4"}},
		{"blank strings are absent", models.SearchFilters{Location: "   ", Keywords: "\t"}, []string{"p1", "p2", "p3", "p4"}},
		{"min above max matches nothing", models.SearchFilters{PriceRange: &models.PriceRange{Min: 60000, Max: 10}}, []string{}},
		{"negative bedrooms passed through literally", models.SearchFilters{Bedrooms: intPtr(-1)}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyFilters(fixtures(), tc.filters)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestApplyFilters_KeywordInDescriptionOnly(t *testing.T) {
	got := ApplyFilters(fixtures(), models.SearchFilters{Keywords: "furnished"})
	assert.Equal(t, []string{"p1", "p3"}, ids(got))
}

func TestApplyFilters_PriceBoundary(t *testing.T) {
	ps := []models.Property{{ID: "x", Price: 50000}}

	got := ApplyFilters(ps, models.SearchFilters{PriceRange: &models.PriceRange{Min: 50000, Max: 50000}})
	assert.Len(t, got, 1)

	got = ApplyFilters(ps, models.SearchFilters{PriceRange: &models.PriceRange{Min: 50001, Max: 60000}})
	assert.Empty(t, got)
}

func TestApplyFilters_SubsequenceAndIdempotent(t *testing.T) {
	in := fixtures()
	filters := []models.SearchFilters{
		{Location: "mumbai"},
		{Keywords: "a"},
		{TransactionType: models.PriceTypeRent, PriceRange: &models.PriceRange{Min: 0, Max: 30000}},
		{PropertyType: models.PropertyTypeHouse, Bedrooms: intPtr(4)},
	}
	for _, f := range filters {
		once := ApplyFilters(in, f)
		twice := ApplyFilters(once, f)
		require.Equal(t, once, twice)

		// every result appears in the input, in the same relative order
		j := 0
		for _, p := range once {
			for j < len(in) && in[j].ID != p.ID {
				j++
			}
			require.Less(t, j, len(in), "result %s out of order", p.ID)
			j++
		}
	}
}

func TestApplyFilters_DoesNotMutateInput(t *testing.T) {
	in := fixtures()
	before := ids(in)
	_ = ApplyFilters(in, models.SearchFilters{Keywords: "flat"})
	assert.Equal(t, before, ids(in))
}
