package domain

import "time"

// IdentityKind classifies an account into exactly one of the three
// marketplace collections.
type IdentityKind string

const (
	KindCustomer IdentityKind = "customer"
	KindAgent    IdentityKind = "agent"
	KindBuilder  IdentityKind = "builder"
)

// Identity is the kind-tagged projection of a customer, agent or builder
// record. The auth core only needs these fields; variant-specific attributes
// stay on the concrete types below.
type Identity struct {
	Kind        IdentityKind `json:"kind"`
	ID          string       `json:"id"`
	PhoneNumber string       `json:"phone_number"`
	Email       string       `json:"email"`
	FullName    string       `json:"full_name"`
	Verified    bool         `json:"verified"`
}

type Customer struct {
	CustomerID   string    `json:"id" dynamodbav:"customer_id"`
	PhoneNumber  string    `json:"phone_number" dynamodbav:"phone_number"`
	Email        string    `json:"email" dynamodbav:"email"`
	FullName     string    `json:"full_name" dynamodbav:"full_name"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Favorites    []string  `json:"favorites" dynamodbav:"favorites"`
	Shortlists   []string  `json:"shortlists" dynamodbav:"shortlists"`
	Verified     bool      `json:"is_verified" dynamodbav:"verified"`
	ProfileImg   string    `json:"profile_img,omitempty" dynamodbav:"profile_img"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"modified" dynamodbav:"updated_at"`
}

func (c *Customer) Identity() *Identity {
	return &Identity{
		Kind:        KindCustomer,
		ID:          c.CustomerID,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		FullName:    c.FullName,
		Verified:    c.Verified,
	}
}

type Agent struct {
	AgentID           string    `json:"id" dynamodbav:"agent_id"`
	PhoneNumber       string    `json:"phone_number" dynamodbav:"phone_number"`
	Email             string    `json:"email" dynamodbav:"email"`
	FullName          string    `json:"full_name" dynamodbav:"full_name"`
	PasswordHash      string    `json:"-" dynamodbav:"password_hash"`
	Agency            string    `json:"agency,omitempty" dynamodbav:"agency"`
	Specialization    string    `json:"specialization" dynamodbav:"specialization"`
	YearsOfExperience int       `json:"years_of_experience" dynamodbav:"years_of_experience"`
	Location          Location  `json:"location" dynamodbav:"location"`
	Verified          bool      `json:"is_verified" dynamodbav:"verified"`
	ProfileImg        string    `json:"profile_img,omitempty" dynamodbav:"profile_img"`
	CreatedAt         time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time `json:"modified" dynamodbav:"updated_at"`
}

func (a *Agent) Identity() *Identity {
	return &Identity{
		Kind:        KindAgent,
		ID:          a.AgentID,
		PhoneNumber: a.PhoneNumber,
		Email:       a.Email,
		FullName:    a.FullName,
		Verified:    a.Verified,
	}
}

type Builder struct {
	BuilderID         string    `json:"id" dynamodbav:"builder_id"`
	PhoneNumber       string    `json:"phone_number" dynamodbav:"phone_number"`
	Email             string    `json:"email" dynamodbav:"email"`
	FullName          string    `json:"full_name" dynamodbav:"full_name"`
	PasswordHash      string    `json:"-" dynamodbav:"password_hash"`
	CompanyName       string    `json:"company_name,omitempty" dynamodbav:"company_name"`
	Specialization    string    `json:"specialization" dynamodbav:"specialization"`
	YearsOfExperience int       `json:"years_of_experience" dynamodbav:"years_of_experience"`
	SubscriptionPlan  string    `json:"subscription_plan" dynamodbav:"subscription_plan"` // "Basic" | "Premium"
	Location          Location  `json:"location" dynamodbav:"location"`
	Verified          bool      `json:"is_verified" dynamodbav:"verified"`
	ProfileImg        string    `json:"profile_img,omitempty" dynamodbav:"profile_img"`
	CreatedAt         time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time `json:"modified" dynamodbav:"updated_at"`
}

func (b *Builder) Identity() *Identity {
	return &Identity{
		Kind:        KindBuilder,
		ID:          b.BuilderID,
		PhoneNumber: b.PhoneNumber,
		Email:       b.Email,
		FullName:    b.FullName,
		Verified:    b.Verified,
	}
}

// Location is a city-level address shared by agents, builders and property
// listings.
type Location struct {
	City    string `json:"city" dynamodbav:"city" validate:"required"`
	State   string `json:"state" dynamodbav:"state" validate:"required"`
	PinCode string `json:"pin_code" dynamodbav:"pin_code" validate:"required"`
}
