package utils

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/UShishir5355t/real-estate-mvp/models"
)

var propertyTypeLabels = map[models.PropertyType]string{
	models.PropertyTypeFlat:       "Flat/Apartment",
	models.PropertyTypeHouse:      "House",
	models.PropertyTypeCommercial: "Commercial",
}

var statusColors = map[models.PropertyStatus]string{
	models.StatusAvailable: "#4CAF50",
	models.StatusRented:    "#FF9800",
	models.StatusSold:      "#F44336",
	models.StatusPending:   "#2196F3",
}

const defaultStatusColor = "#666"

func DialURL(phone string) string {
	return "tel:" + phone
}

func WhatsAppURL(number, title string) string {
	message := "Hi, I'm interested in the property: " + title
	return fmt.Sprintf("whatsapp://send?phone=%s&text=%s", number, encodeURIComponent(message))
}

func ShareMessage(p models.Property) string {
	return fmt.Sprintf("Check out this property: %s\nPrice: %s\nLocation: %s",
		p.Title, FormatPrice(p.Price, p.PriceType), p.Location.Area)
}

// FormatPrice renders a rupee amount with Indian digit grouping
// (12,34,567) and no fraction. Rent prices get a "/month" suffix.
func FormatPrice(price float64, priceType models.PriceType) string {
	n := int64(math.Round(math.Abs(price)))
	formatted := "₹" + groupIndian(strconv.FormatInt(n, 10))
	if price < 0 && n != 0 {
		formatted = "-" + formatted
	}
	if priceType == models.PriceTypeRent {
		return formatted + "/month"
	}
	return formatted
}

func PropertyTypeLabel(t models.PropertyType) string {
	if label, ok := propertyTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

func StatusColor(s models.PropertyStatus) string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return defaultStatusColor
}

// groupIndian puts a comma before the last three digits and then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

// encodeURIComponent escapes s the way browsers do for a query value,
// leaving !'()* and spaces-as-%20 alone.
func encodeURIComponent(s string) string {
	r := strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")
	return r.Replace(url.QueryEscape(s))
}
