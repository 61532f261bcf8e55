package models

// Collection names and enumerations shared by the admin panel and the mobile app.
// Both clients read and write the same documents, so these values must not drift.
const (
	CollectionProperties = "properties"
	CollectionInquiries  = "inquiries"
	CollectionUsers      = "users"
)

type PropertyType string

const (
	PropertyTypeFlat       PropertyType = "flat"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCommercial PropertyType = "commercial"
)

type PriceType string

const (
	PriceTypeRent PriceType = "rent"
	PriceTypeSale PriceType = "sale"
)

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusRented    PropertyStatus = "rented"
	StatusSold      PropertyStatus = "sold"
	StatusPending   PropertyStatus = "pending"
)

type Furnishing string

const (
	Furnished     Furnishing = "furnished"
	SemiFurnished Furnishing = "semi-furnished"
	Unfurnished   Furnishing = "unfurnished"
)

type InquiryStatus string

const (
	InquiryPending   InquiryStatus = "pending"
	InquiryResponded InquiryStatus = "responded"
	InquiryClosed    InquiryStatus = "closed"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
