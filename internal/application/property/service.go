package property

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/estate-api/internal/domain"
	"github.com/estate-api/internal/pkg/id"
	"github.com/estate-api/internal/pkg/validate"
)

type CreateRequest struct {
	Details    domain.PropertyDetails   `json:"property_details"`
	Additional domain.AdditionalDetails `json:"additional_details"`
	Contact    domain.ContactInfo       `json:"contact_info"`
	Visibility string                   `json:"visibility" validate:"required,oneof=public private"`
}

type BuyRequest struct {
	OfferPrice    float64 `json:"offer_price" validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required"`
}

type RentRequest struct {
	RentPrice      float64 `json:"rent_price" validate:"required,gt=0"`
	RentalDuration string  `json:"rental_duration" validate:"required"`
	PaymentMethod  string  `json:"payment_method" validate:"required"`
}

// Listing is the trimmed projection returned by ListMine.
type Listing struct {
	PropertyID  string   `json:"propertyId"`
	Title       string   `json:"title"`
	ListingType string   `json:"status"`
	BuildStatus string   `json:"propertyStatus"`
	TxStatus    string   `json:"txStatus"`
	Media       []string `json:"media"`
	Views       int      `json:"views"`
	Comments    []string `json:"comments"`
}

type Store interface {
	Put(ctx context.Context, p *domain.Property) error
	Get(ctx context.Context, propertyID string) (*domain.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)
	Update(ctx context.Context, propertyID string, updates map[string]interface{}) error
	Delete(ctx context.Context, propertyID string) error
	IncrementViews(ctx context.Context, propertyID string) error
}

// ObjectStore persists listing media.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// Service manages property listings and their buy/rent transitions.
type Service struct {
	store Store
	media ObjectStore
}

func NewService(store Store, media ObjectStore) *Service {
	return &Service{store: store, media: media}
}

// Create posts a new listing owned by the calling agent or builder.
func (s *Service) Create(ctx context.Context, ownerID string, ownerKind domain.IdentityKind, req CreateRequest) (string, error) {
	if ownerKind != domain.KindAgent && ownerKind != domain.KindBuilder {
		return "", fmt.Errorf("only agents and builders can post properties: %w", domain.ErrForbidden)
	}
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	p := &domain.Property{
		PropertyID: id.New(),
		OwnerID:    ownerID,
		OwnerKind:  ownerKind,
		Details:    req.Details,
		Media:      []string{},
		Additional: req.Additional,
		Contact:    req.Contact,
		Visibility: req.Visibility,
		TxStatus:   domain.TxAvailable,
		Comments:   []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Put(ctx, p); err != nil {
		return "", err
	}
	slog.Info("property posted", "property_id", p.PropertyID, "owner_id", ownerID)
	return p.PropertyID, nil
}

// ListMine returns the caller's listings, optionally filtered by listing type.
func (s *Service) ListMine(ctx context.Context, ownerID string, listingType string) ([]Listing, error) {
	props, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	listings := make([]Listing, 0, len(props))
	for _, p := range props {
		if listingType != "" && p.Details.ListingType != listingType {
			continue
		}
		listings = append(listings, Listing{
			PropertyID:  p.PropertyID,
			Title:       p.Details.Title,
			ListingType: p.Details.ListingType,
			BuildStatus: p.Details.BuildStatus,
			TxStatus:    p.TxStatus,
			Media:       p.Media,
			Views:       p.Views,
			Comments:    p.Comments,
		})
	}
	return listings, nil
}

// Get returns a listing by id and bumps its view counter. The counter bump
// is best effort; a failed increment does not fail the read.
func (s *Service) Get(ctx context.Context, propertyID string) (*domain.Property, error) {
	p, err := s.store.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.store.IncrementViews(ctx, propertyID); err != nil {
		slog.Warn("failed to bump view counter", "property_id", propertyID, "err", err)
	}
	return p, nil
}

// Delete removes a listing. Only the owner may delete it.
func (s *Service) Delete(ctx context.Context, ownerID, propertyID string) error {
	p, err := s.store.Get(ctx, propertyID)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return fmt.Errorf("not the listing owner: %w", domain.ErrForbidden)
	}
	return s.store.Delete(ctx, propertyID)
}

// Upload is one media file attached to a listing.
type Upload struct {
	Body        io.Reader
	ContentType string
	Ext         string
}

// AddImages uploads media files to object storage and appends their URLs to
// the listing. Only the owner may attach media.
func (s *Service) AddImages(ctx context.Context, ownerID, propertyID string, uploads []Upload) ([]string, error) {
	p, err := s.store.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, fmt.Errorf("not the listing owner: %w", domain.ErrForbidden)
	}
	urls := make([]string, 0, len(uploads))
	for i, u := range uploads {
		key := fmt.Sprintf("property-media/%s-%d-%d.%s", propertyID, time.Now().UnixMilli(), i, u.Ext)
		url, err := s.media.Upload(ctx, key, u.Body, u.ContentType)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	if err := s.store.Update(ctx, propertyID, map[string]interface{}{"media": append(p.Media, urls...)}); err != nil {
		return nil, err
	}
	return urls, nil
}

// Buy transitions an available listing to sold with buyer attribution.
func (s *Service) Buy(ctx context.Context, propertyID, buyerID string, req BuyRequest) (*domain.SaleRecord, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	p, err := s.store.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p.TxStatus != domain.TxAvailable {
		return nil, fmt.Errorf("property is not available for purchase: %w", domain.ErrBadRequest)
	}
	sale := &domain.SaleRecord{
		BuyerID:       buyerID,
		OfferPrice:    req.OfferPrice,
		PaymentMethod: req.PaymentMethod,
		SoldAt:        time.Now().UTC(),
	}
	updates := map[string]interface{}{
		"tx_status": domain.TxSold,
		"sale":      sale,
	}
	if err := s.store.Update(ctx, propertyID, updates); err != nil {
		return nil, err
	}
	slog.Info("property purchased", "property_id", propertyID, "buyer_id", buyerID)
	return sale, nil
}

// Rent transitions an available listing to rented with renter attribution.
func (s *Service) Rent(ctx context.Context, propertyID, renterID string, req RentRequest) (*domain.RentalRecord, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	p, err := s.store.Get(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p.TxStatus != domain.TxAvailable {
		return nil, fmt.Errorf("property is not available for rent: %w", domain.ErrBadRequest)
	}
	rental := &domain.RentalRecord{
		RenterID:       renterID,
		RentPrice:      req.RentPrice,
		RentalDuration: req.RentalDuration,
		PaymentMethod:  req.PaymentMethod,
		RentedAt:       time.Now().UTC(),
	}
	updates := map[string]interface{}{
		"tx_status": domain.TxRented,
		"rental":    rental,
	}
	if err := s.store.Update(ctx, propertyID, updates); err != nil {
		return nil, err
	}
	slog.Info("property rented", "property_id", propertyID, "renter_id", renterID)
	return rental, nil
}
