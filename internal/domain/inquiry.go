package domain

import "time"

const (
	InquiryPending   = "pending"
	InquiryResponded = "responded"
)

// Inquiry is a customer's message about a listed property.
type Inquiry struct {
	InquiryID  string    `json:"id" dynamodbav:"inquiry_id"`
	PropertyID string    `json:"property_id" dynamodbav:"property_id"`
	CustomerID string    `json:"customer_id" dynamodbav:"customer_id"`
	Message    string    `json:"message" dynamodbav:"message"`
	Status     string    `json:"status" dynamodbav:"status"` // pending | responded
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"modified" dynamodbav:"updated_at"`
}
