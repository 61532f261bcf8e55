package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/UShishir5355t/real-estate-mvp/models"
	"github.com/UShishir5355t/real-estate-mvp/search"
	"github.com/UShishir5355t/real-estate-mvp/services"
	"github.com/UShishir5355t/real-estate-mvp/utils"
)

// maxSafePrice is the open upper bound used when only a minimum is given.
const maxSafePrice = 1<<53 - 1

const defaultRadiusKm = 5.0

// ListingController serves the mobile app's read-only views.
type ListingController struct {
	service services.PropertyService
}

func NewListingController(service services.PropertyService) *ListingController {
	return &ListingController{service: service}
}

type ListingLinks struct {
	Call     string `json:"call"`
	WhatsApp string `json:"whatsapp"`
	Share    string `json:"share"`
}

type ListingDetail struct {
	models.Property
	FormattedPrice    string       `json:"formattedPrice"`
	PropertyTypeLabel string       `json:"propertyTypeLabel"`
	StatusColor       string       `json:"statusColor"`
	Links             ListingLinks `json:"links"`
}

type NearbyListing struct {
	models.Property
	DistanceKm float64 `json:"distanceKm"`
}

// ListListings returns available listings matching the query filters.
// Unparseable numbers are ignored, like any other absent filter.
func (lc *ListingController) ListListings(c echo.Context) error {
	properties, err := lc.service.ListAvailable(c.Request().Context(), filtersFromQuery(c))
	if err != nil {
		return failure(c, err, "load properties")
	}
	return c.JSON(http.StatusOK, properties)
}

func (lc *ListingController) Nearby(c echo.Context) error {
	lat, errLat := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if errLat != nil || errLng != nil || math.Abs(lat) > 90 || math.Abs(lng) > 180 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "lat and lng are required"})
	}
	radius := defaultRadiusKm
	if r, err := strconv.ParseFloat(c.QueryParam("radiusKm"), 64); err == nil && r > 0 {
		radius = r
	}

	properties, err := lc.service.ListAvailable(c.Request().Context(), filtersFromQuery(c))
	if err != nil {
		return failure(c, err, "load properties")
	}
	found := search.WithinRadius(properties, lat, lng, radius)
	out := make([]NearbyListing, 0, len(found))
	for _, n := range found {
		out = append(out, NearbyListing{Property: n.Property, DistanceKm: n.DistanceKm})
	}
	return c.JSON(http.StatusOK, out)
}

func (lc *ListingController) GetListing(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidDocumentID(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}
	property, err := lc.service.GetProperty(c.Request().Context(), id)
	if err != nil {
		return failure(c, err, "load property")
	}
	return c.JSON(http.StatusOK, detail(*property))
}

func detail(p models.Property) ListingDetail {
	return ListingDetail{
		Property:          p,
		FormattedPrice:    utils.FormatPrice(p.Price, p.PriceType),
		PropertyTypeLabel: utils.PropertyTypeLabel(p.PropertyType),
		StatusColor:       utils.StatusColor(p.Status),
		Links: ListingLinks{
			Call:     utils.DialURL(p.BrokerContact.Phone),
			WhatsApp: utils.WhatsAppURL(p.BrokerContact.WhatsApp, p.Title),
			Share:    utils.ShareMessage(p),
		},
	}
}

func filtersFromQuery(c echo.Context) models.SearchFilters {
	f := models.SearchFilters{
		PropertyType:    models.PropertyType(c.QueryParam("propertyType")),
		TransactionType: models.PriceType(c.QueryParam("transactionType")),
		Location:        c.QueryParam("location"),
		Keywords:        c.QueryParam("keywords"),
		PriceRange:      priceRange(c.QueryParam("minPrice"), c.QueryParam("maxPrice")),
	}
	if bedrooms, err := strconv.Atoi(c.QueryParam("bedrooms")); err == nil {
		f.Bedrooms = &bedrooms
	}
	return f
}

// priceRange builds an inclusive range from optional bounds. A missing
// minimum is 0 and a missing maximum is open.
func priceRange(minParam, maxParam string) *models.PriceRange {
	lo, errLo := strconv.ParseFloat(minParam, 64)
	hi, errHi := strconv.ParseFloat(maxParam, 64)
	if errLo != nil && errHi != nil {
		return nil
	}
	if errLo != nil {
		lo = 0
	}
	if errHi != nil {
		hi = maxSafePrice
	}
	return &models.PriceRange{Min: lo, Max: hi}
}
