package models

import (
	"fmt"
	"time"
)

// Inquiry is a contact request from the mobile app. PropertyID is a soft
// reference: nothing stops the listing from being deleted afterwards.
type Inquiry struct {
	ID          string        `bson:"_id" json:"id"`
	PropertyID  string        `bson:"propertyId" json:"propertyId"`
	ClientName  string        `bson:"clientName" json:"clientName"`
	ClientEmail string        `bson:"clientEmail" json:"clientEmail"`
	ClientPhone string        `bson:"clientPhone" json:"clientPhone"`
	Message     string        `bson:"message" json:"message"`
	Status      InquiryStatus `bson:"status" json:"status"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}

type InquiryInput struct {
	PropertyID  string        `json:"propertyId"`
	ClientName  string        `json:"clientName"`
	ClientEmail string        `json:"clientEmail"`
	ClientPhone string        `json:"clientPhone"`
	Message     string        `json:"message"`
	Status      InquiryStatus `json:"status" validate:"omitempty,oneof=pending responded closed"`
}

func (in InquiryInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
	}
	return nil
}

func (in InquiryInput) ToInquiry() Inquiry {
	status := in.Status
	if status == "" {
		status = InquiryPending
	}
	return Inquiry{
		PropertyID:  in.PropertyID,
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
		ClientPhone: in.ClientPhone,
		Message:     in.Message,
		Status:      status,
	}
}

func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryPending, InquiryResponded, InquiryClosed:
		return true
	}
	return false
}
