package utils

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UShishir5355t/real-estate-mvp/models"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price float64
		typ   models.PriceType
		want  string
	}{
		{0, models.PriceTypeSale, "₹0"},
		{999, models.PriceTypeSale, "₹999"},
		{1000, models.PriceTypeSale, "₹1,000"},
		{45000, models.PriceTypeRent, "₹45,000/month"},
		{100000, models.PriceTypeSale, "₹1,00,000"},
		{9500000, models.PriceTypeSale, "₹95,00,000"},
		{123456789, models.PriceTypeSale, "₹12,34,56,789"},
		{2500.6, models.PriceTypeRent, "₹2,501/month"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.price, tc.typ), "price %v", tc.price)
	}
}

func TestContactLinks(t *testing.T) {
	assert.Equal(t, "tel:+919800000000", DialURL("+919800000000"))
	assert.Equal(t,
		"whatsapp://send?phone=919800000000&text=Hi%2C%20I'm%20interested%20in%20the%20property%3A%202BHK%20(Sea%20view)",
		WhatsAppURL("919800000000", "2BHK (Sea view)"))

	p := models.Property{
		Title:     "Villa",
		Price:     25000,
		PriceType: models.PriceTypeRent,
		Location:  models.Location{Area: "Baner"},
	}
	assert.Equal(t, "Check out this property: Villa\nPrice: ₹25,000/month\nLocation: Baner", ShareMessage(p))
}

func TestLabelsAndColors(t *testing.T) {
	assert.Equal(t, "Flat/Apartment", PropertyTypeLabel(models.PropertyTypeFlat))
	assert.Equal(t, "villa", PropertyTypeLabel("villa"))
	assert.Equal(t, "#FF9800", StatusColor(models.StatusRented))
	assert.Equal(t, "#666", StatusColor("archived"))
}

func TestJWTManager(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	require.Error(t, err)

	m, err := NewJWTManager("secret", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := m.Generate("u1", "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	other, _ := NewJWTManager("other", time.Hour)
	_, err = other.Validate(token)
	assert.Error(t, err)

	expired, _ := NewJWTManager("secret", time.Nanosecond)
	token, _, err = expired.Generate("u1", "a@b.c", models.RoleAdmin)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	_, err = expired.Validate(token)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hashed, "hunter22"))
	assert.Error(t, CheckPassword(hashed, "hunter23"))
}

func TestIsValidDocumentID(t *testing.T) {
	assert.True(t, IsValidDocumentID(primitive.NewObjectID().Hex()))
	assert.False(t, IsValidDocumentID(""))
	assert.False(t, IsValidDocumentID("PROP1001"))
	assert.False(t, IsValidDocumentID("../etc/passwd"))
}

func TestInitLogger(t *testing.T) {
	defer Logger.SetLevel(logrus.InfoLevel)

	InitLogger("listings-test", "DEBUG")
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())

	InitLogger("listings-test", "loud")
	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
}
