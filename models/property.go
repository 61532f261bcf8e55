package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidUpdate = errors.New("invalid property update")

var validate = validator.New()

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type Location struct {
	Address     string      `bson:"address" json:"address"`
	Area        string      `bson:"area" json:"area"`
	City        string      `bson:"city" json:"city"`
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
}

type Details struct {
	Bedrooms   int        `bson:"bedrooms" json:"bedrooms" validate:"gte=0"`
	Bathrooms  int        `bson:"bathrooms" json:"bathrooms" validate:"gte=0"`
	Area       float64    `bson:"area" json:"area" validate:"gte=0"`
	Furnishing Furnishing `bson:"furnishing" json:"furnishing" validate:"omitempty,oneof=furnished semi-furnished unfurnished"`
}

type BrokerContact struct {
	Name     string `bson:"name" json:"name"`
	Phone    string `bson:"phone" json:"phone"`
	WhatsApp string `bson:"whatsapp" json:"whatsapp"`
}

type Property struct {
	ID            string         `bson:"_id" json:"id"`
	Title         string         `bson:"title" json:"title"`
	Description   string         `bson:"description" json:"description"`
	Price         float64        `bson:"price" json:"price"`
	PriceType     PriceType      `bson:"priceType" json:"priceType"`
	PropertyType  PropertyType   `bson:"propertyType" json:"propertyType"`
	Location      Location       `bson:"location" json:"location"`
	Details       Details        `bson:"details" json:"details"`
	Amenities     []string       `bson:"amenities" json:"amenities"`
	Images        []string       `bson:"images" json:"images"`
	Videos        []string       `bson:"videos" json:"videos"`
	Status        PropertyStatus `bson:"status" json:"status"`
	BrokerContact BrokerContact  `bson:"brokerContact" json:"brokerContact"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// PropertyInput is the admin form payload for a new listing. Images are
// supplied separately as files and videos are reserved.
type PropertyInput struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Price         float64        `json:"price" validate:"gte=0"`
	PriceType     PriceType      `json:"priceType" validate:"omitempty,oneof=rent sale"`
	PropertyType  PropertyType   `json:"propertyType" validate:"omitempty,oneof=flat house commercial"`
	Location      Location       `json:"location"`
	Details       Details        `json:"details"`
	Amenities     []string       `json:"amenities"`
	Status        PropertyStatus `json:"status" validate:"omitempty,oneof=available rented sold pending"`
	BrokerContact BrokerContact  `json:"brokerContact"`
}

func (in PropertyInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	return nil
}

// ToProperty builds the document written on create. Status falls back to
// available when the form leaves it empty.
func (in PropertyInput) ToProperty(images []string) Property {
	status := in.Status
	if status == "" {
		status = StatusAvailable
	}
	amenities := in.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	if images == nil {
		images = []string{}
	}
	return Property{
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		PriceType:     in.PriceType,
		PropertyType:  in.PropertyType,
		Location:      in.Location,
		Details:       in.Details,
		Amenities:     amenities,
		Images:        images,
		Videos:        []string{},
		Status:        status,
		BrokerContact: in.BrokerContact,
	}
}

// PropertyUpdate is a field update set. Nil fields are left untouched by the
// store; a non-nil field replaces the whole top-level value. Images are not
// part of it: they only grow through uploads and shrink through single-image
// deletion.
type PropertyUpdate struct {
	Title         *string         `json:"title,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Price         *float64        `json:"price,omitempty" validate:"omitempty,gte=0"`
	PriceType     *PriceType      `json:"priceType,omitempty" validate:"omitempty,oneof=rent sale"`
	PropertyType  *PropertyType   `json:"propertyType,omitempty" validate:"omitempty,oneof=flat house commercial"`
	Location      *Location       `json:"location,omitempty"`
	Details       *Details        `json:"details,omitempty"`
	Amenities     *[]string       `json:"amenities,omitempty"`
	Status        *PropertyStatus `json:"status,omitempty" validate:"omitempty,oneof=available rented sold pending"`
	BrokerContact *BrokerContact  `json:"brokerContact,omitempty"`
}

func (u PropertyUpdate) Validate() error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	return nil
}

func (u PropertyUpdate) IsEmpty() bool {
	return len(u.Fields()) == 0
}

// Fields maps store field names to their new values.
func (u PropertyUpdate) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.PriceType != nil {
		fields["priceType"] = *u.PriceType
	}
	if u.PropertyType != nil {
		fields["propertyType"] = *u.PropertyType
	}
	if u.Location != nil {
		fields["location"] = *u.Location
	}
	if u.Details != nil {
		fields["details"] = *u.Details
	}
	if u.Amenities != nil {
		fields["amenities"] = *u.Amenities
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	if u.BrokerContact != nil {
		fields["brokerContact"] = *u.BrokerContact
	}
	return fields
}

// Apply copies the set fields onto p, mirroring what the store does with Fields.
func (u PropertyUpdate) Apply(p *Property) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.PriceType != nil {
		p.PriceType = *u.PriceType
	}
	if u.PropertyType != nil {
		p.PropertyType = *u.PropertyType
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Details != nil {
		p.Details = *u.Details
	}
	if u.Amenities != nil {
		p.Amenities = append([]string(nil), (*u.Amenities)...)
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.BrokerContact != nil {
		p.BrokerContact = *u.BrokerContact
	}
}
