package service

import (
	"context"
	"errors"
	"strings"

	"sportmap/internal/blob"
	"sportmap/internal/store"

	"go.uber.org/zap"
)

type VenueService struct {
	store  store.Storage
	blobs  blob.Store
	policy Policy
	logger *zap.SugaredLogger
}

func NewVenueService(store store.Storage, blobs blob.Store, logger *zap.SugaredLogger) *VenueService {
	return &VenueService{
		store:  store,
		blobs:  blobs,
		logger: logger,
	}
}

// VenueInput carries the mutable venue fields for Create and Update.
// Latitude/Longitude are pointers so a missing coordinate is
// distinguishable from zero.
type VenueInput struct {
	Name             string
	Description      string
	Latitude         *float64
	Longitude        *float64
	Address          *string
	City             string
	Province         string
	Region           string
	SportType        string
	SurfaceType      *string
	VenueType        *string
	IsPublic         *bool
	HasLighting      bool
	HasChangingRooms bool
	HasParking       bool
	OpeningHours     *string
	Prices           *string
}

// List returns venues matching the filter, newest first, each carrying
// its owner name and its full image collection. The image list is
// always non-nil.
func (s *VenueService) List(ctx context.Context, filter store.VenueFilter) ([]store.Venue, error) {
	venues, err := s.store.Venues.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	venueIDs := make([]int64, 0, len(venues))
	for _, v := range venues {
		venueIDs = append(venueIDs, v.ID)
	}

	imagesByVenue, err := s.store.Images.ListByVenueIDs(ctx, venueIDs)
	if err != nil {
		return nil, err
	}

	for i := range venues {
		images := imagesByVenue[venues[i].ID]
		if images == nil {
			images = []store.Image{}
		}
		venues[i].Images = images
	}

	return venues, nil
}

func (s *VenueService) Get(ctx context.Context, venueID int64) (*store.Venue, error) {
	venue, err := s.store.Venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	images, err := s.store.Images.ListByVenue(ctx, venue.ID)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []store.Image{}
	}
	venue.Images = images

	return venue, nil
}

func (s *VenueService) Create(ctx context.Context, input VenueInput, caller *store.User) (*store.Venue, error) {
	if err := validateRequired(input, true); err != nil {
		return nil, err
	}

	venue := &store.Venue{
		OwnerID:          &caller.ID,
		Name:             strings.TrimSpace(input.Name),
		Description:      input.Description,
		Latitude:         *input.Latitude,
		Longitude:        *input.Longitude,
		Address:          input.Address,
		City:             strings.TrimSpace(input.City),
		Province:         strings.TrimSpace(input.Province),
		Region:           strings.TrimSpace(input.Region),
		SportType:        strings.TrimSpace(input.SportType),
		SurfaceType:      input.SurfaceType,
		VenueType:        input.VenueType,
		IsPublic:         true,
		HasLighting:      input.HasLighting,
		HasChangingRooms: input.HasChangingRooms,
		HasParking:       input.HasParking,
		OpeningHours:     normalizeOptional(input.OpeningHours),
		Prices:           normalizeOptional(input.Prices),
	}
	if input.IsPublic != nil {
		venue.IsPublic = *input.IsPublic
	}

	if err := s.store.Venues.Create(ctx, venue); err != nil {
		return nil, err
	}

	venue.Images = []store.Image{}
	return venue, nil
}

// Update overwrites all mutable fields. Any authenticated caller may
// update any venue; the check is still routed through the policy so the
// rule can be tightened in one place.
func (s *VenueService) Update(ctx context.Context, venueID int64, input VenueInput, caller *store.User) (*store.Venue, error) {
	if err := validateRequired(input, false); err != nil {
		return nil, err
	}

	venue, err := s.store.Venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.policy.CanMutateVenue(caller, venue.OwnerID) {
		return nil, ErrForbidden
	}

	venue.Name = strings.TrimSpace(input.Name)
	venue.Description = input.Description
	venue.Latitude = *input.Latitude
	venue.Longitude = *input.Longitude
	venue.Address = input.Address
	venue.City = strings.TrimSpace(input.City)
	venue.Province = strings.TrimSpace(input.Province)
	venue.Region = strings.TrimSpace(input.Region)
	venue.SportType = strings.TrimSpace(input.SportType)
	venue.SurfaceType = input.SurfaceType
	venue.VenueType = input.VenueType
	if input.IsPublic != nil {
		venue.IsPublic = *input.IsPublic
	}
	venue.HasLighting = input.HasLighting
	venue.HasChangingRooms = input.HasChangingRooms
	venue.HasParking = input.HasParking
	venue.OpeningHours = normalizeOptional(input.OpeningHours)
	venue.Prices = normalizeOptional(input.Prices)

	if err := s.store.Venues.Update(ctx, venue); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	images, err := s.store.Images.ListByVenue(ctx, venue.ID)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []store.Image{}
	}
	venue.Images = images

	return venue, nil
}

// Delete removes the venue with all its images and reports. Non-owners
// get the same ErrNotFound as a missing id, so existence never leaks.
// Blob cleanup is best-effort once the rows are gone.
func (s *VenueService) Delete(ctx context.Context, venueID int64, caller *store.User) error {
	venue, err := s.store.Venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !s.policy.CanDeleteVenue(caller, venue.OwnerID) {
		return ErrNotFound
	}

	images, err := s.store.Images.ListByVenue(ctx, venueID)
	if err != nil {
		return err
	}

	if err := s.store.Venues.Delete(ctx, venueID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	for _, image := range images {
		if err := s.blobs.Delete(ctx, image.Path); err != nil {
			s.logger.Errorw("failed to delete image blob during venue cascade",
				"venue_id", venueID, "image_id", image.ID, "error", err)
		}
	}

	return nil
}

func validateRequired(input VenueInput, creating bool) error {
	if strings.TrimSpace(input.Name) == "" {
		return invalidField("name", "must not be empty")
	}
	if input.Latitude == nil {
		return invalidField("latitude", "is required and must be numeric")
	}
	if input.Longitude == nil {
		return invalidField("longitude", "is required and must be numeric")
	}

	if creating {
		if strings.TrimSpace(input.City) == "" {
			return invalidField("city", "is required")
		}
		if strings.TrimSpace(input.Province) == "" {
			return invalidField("province", "is required")
		}
		if strings.TrimSpace(input.Region) == "" {
			return invalidField("region", "is required")
		}
		if strings.TrimSpace(input.SportType) == "" {
			return invalidField("sport_type", "is required")
		}
	}

	return nil
}

// normalizeOptional collapses blank text to absent.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
