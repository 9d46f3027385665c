package domain

import "time"

// Transaction states of a listing. ListingType (buy/rent/PG) describes what
// the owner offers; TxStatus tracks whether a deal has closed.
const (
	TxAvailable = "available"
	TxSold      = "sold"
	TxRented    = "rented"
)

type Property struct {
	PropertyID string            `json:"id" dynamodbav:"property_id"`
	OwnerID    string            `json:"owner_id" dynamodbav:"owner_id"`
	OwnerKind  IdentityKind      `json:"owner_kind" dynamodbav:"owner_kind"` // agent | builder
	Details    PropertyDetails   `json:"property_details" dynamodbav:"details"`
	Media      []string          `json:"media" dynamodbav:"media"`
	Additional AdditionalDetails `json:"additional_details" dynamodbav:"additional"`
	Contact    ContactInfo       `json:"contact_info" dynamodbav:"contact"`
	Visibility string            `json:"visibility" dynamodbav:"visibility"` // public | private
	TxStatus   string            `json:"tx_status" dynamodbav:"tx_status"`   // available | sold | rented
	Sale       *SaleRecord       `json:"sale,omitempty" dynamodbav:"sale"`
	Rental     *RentalRecord     `json:"rental,omitempty" dynamodbav:"rental"`
	Views      int               `json:"views" dynamodbav:"views"`
	Comments   []string          `json:"comments" dynamodbav:"comments"`
	CreatedAt  time.Time         `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time         `json:"modified" dynamodbav:"updated_at"`
}

type PropertyDetails struct {
	Title           string   `json:"title" dynamodbav:"title" validate:"required"`
	Type            string   `json:"type" dynamodbav:"type" validate:"required,oneof=Residential Commercial Land"`
	ListingType     string   `json:"status" dynamodbav:"listing_type" validate:"required,oneof=buy rent PG"`
	Price           float64  `json:"price" dynamodbav:"price" validate:"required,gt=0"`
	Location        Location `json:"location" dynamodbav:"location"`
	Description     string   `json:"description" dynamodbav:"description" validate:"required"`
	BuildStatus     string   `json:"property_status" dynamodbav:"build_status" validate:"required,oneof='Ready to Move' 'Under Construction'"`
	PricePerSqFt    float64  `json:"price_per_sq_ft,omitempty" dynamodbav:"price_per_sq_ft"`
	PriceNegotiable bool     `json:"price_negotiable" dynamodbav:"price_negotiable"`
}

type AdditionalDetails struct {
	Bedrooms         int      `json:"bedrooms,omitempty" dynamodbav:"bedrooms"`
	Bathrooms        int      `json:"bathrooms,omitempty" dynamodbav:"bathrooms"`
	Area             float64  `json:"area,omitempty" dynamodbav:"area"`
	Amenities        []string `json:"amenities,omitempty" dynamodbav:"amenities"`
	NearbyFacilities []string `json:"nearby_facilities,omitempty" dynamodbav:"nearby_facilities"`
}

type ContactInfo struct {
	Phone string `json:"phone" dynamodbav:"phone" validate:"required"`
	Email string `json:"email" dynamodbav:"email" validate:"required,email"`
}

// SaleRecord captures a closed purchase.
type SaleRecord struct {
	BuyerID       string    `json:"buyer_id" dynamodbav:"buyer_id"`
	OfferPrice    float64   `json:"offer_price" dynamodbav:"offer_price"`
	PaymentMethod string    `json:"payment_method" dynamodbav:"payment_method"`
	SoldAt        time.Time `json:"sold_at" dynamodbav:"sold_at"`
}

// RentalRecord captures a closed rental agreement.
type RentalRecord struct {
	RenterID       string    `json:"renter_id" dynamodbav:"renter_id"`
	RentPrice      float64   `json:"rent_price" dynamodbav:"rent_price"`
	RentalDuration string    `json:"rental_duration" dynamodbav:"rental_duration"`
	PaymentMethod  string    `json:"payment_method" dynamodbav:"payment_method"`
	RentedAt       time.Time `json:"rented_at" dynamodbav:"rented_at"`
}
