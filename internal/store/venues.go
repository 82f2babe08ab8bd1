package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Venue represents a venue in the database
type Venue struct {
	ID               int64     `json:"id"`
	OwnerID          *int64    `json:"owner_id,omitempty"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Address          *string   `json:"address,omitempty"`
	City             string    `json:"city"`
	Province         string    `json:"province"`
	Region           string    `json:"region"`
	SportType        string    `json:"sport_type"`
	SurfaceType      *string   `json:"surface_type,omitempty"`
	VenueType        *string   `json:"venue_type,omitempty"`
	IsPublic         bool      `json:"is_public"`
	HasLighting      bool      `json:"has_lighting"`
	HasChangingRooms bool      `json:"has_changing_rooms"`
	HasParking       bool      `json:"has_parking"`
	OpeningHours     *string   `json:"opening_hours,omitempty"`
	Prices           *string   `json:"prices,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined fields
	OwnerName *string `json:"owner_name,omitempty"`
	Images    []Image `json:"images"`
}

// VenueFilter narrows List. City, Province and Region match as
// case-insensitive substrings; the rest match exactly.
type VenueFilter struct {
	City        *string
	Province    *string
	Region      *string
	SurfaceType *string
	VenueType   *string
	SportType   *string
}

type VenuesStore struct {
	db *pgxpool.Pool
}

func (s *VenuesStore) Create(ctx context.Context, venue *Venue) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO venues (
			owner_id, name, description, latitude, longitude,
			address, city, province, region,
			sport_type, surface_type, venue_type,
			is_public, has_lighting, has_changing_rooms, has_parking,
			opening_hours, prices
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17, $18
		)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		venue.OwnerID,
		venue.Name,
		venue.Description,
		venue.Latitude,
		venue.Longitude,
		venue.Address,
		venue.City,
		venue.Province,
		venue.Region,
		venue.SportType,
		venue.SurfaceType,
		venue.VenueType,
		venue.IsPublic,
		venue.HasLighting,
		venue.HasChangingRooms,
		venue.HasParking,
		venue.OpeningHours,
		venue.Prices,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}

	return nil
}

const venueColumns = `
	v.id, v.owner_id, v.name, v.description, v.latitude, v.longitude,
	v.address, v.city, v.province, v.region,
	v.sport_type, v.surface_type, v.venue_type,
	v.is_public, v.has_lighting, v.has_changing_rooms, v.has_parking,
	v.opening_hours, v.prices, v.created_at, v.updated_at,
	u.username
`

func scanVenue(row pgx.Row, v *Venue) error {
	return row.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Name,
		&v.Description,
		&v.Latitude,
		&v.Longitude,
		&v.Address,
		&v.City,
		&v.Province,
		&v.Region,
		&v.SportType,
		&v.SurfaceType,
		&v.VenueType,
		&v.IsPublic,
		&v.HasLighting,
		&v.HasChangingRooms,
		&v.HasParking,
		&v.OpeningHours,
		&v.Prices,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.OwnerName,
	)
}

func (s *VenuesStore) GetByID(ctx context.Context, venueID int64) (*Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT ` + venueColumns + `
		FROM venues v
		LEFT JOIN users u ON u.id = v.owner_id
		WHERE v.id = $1
	`

	var venue Venue
	if err := scanVenue(s.db.QueryRow(ctx, query, venueID), &venue); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &venue, nil
}

// List returns venues matching the filter, newest first. All filter
// clauses are conjunctive.
func (s *VenuesStore) List(ctx context.Context, filter VenueFilter) ([]Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT ` + venueColumns + `
		FROM venues v
		LEFT JOIN users u ON u.id = v.owner_id
		WHERE 1=1
	`
	args := []interface{}{}
	argCounter := 1

	addSubstring := func(column string, value *string) {
		if value != nil && *value != "" {
			query += fmt.Sprintf(" AND v.%s ILIKE '%%' || $%d || '%%'", column, argCounter)
			args = append(args, *value)
			argCounter++
		}
	}
	addExact := func(column string, value *string) {
		if value != nil && *value != "" {
			query += fmt.Sprintf(" AND v.%s = $%d", column, argCounter)
			args = append(args, *value)
			argCounter++
		}
	}

	addSubstring("city", filter.City)
	addSubstring("province", filter.Province)
	addSubstring("region", filter.Region)
	addExact("surface_type", filter.SurfaceType)
	addExact("venue_type", filter.VenueType)
	addExact("sport_type", filter.SportType)

	query += " ORDER BY v.created_at DESC, v.id DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		var venue Venue
		if err := scanVenue(rows, &venue); err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}

	return venues, rows.Err()
}

// Update overwrites every mutable field and bumps updated_at.
func (s *VenuesStore) Update(ctx context.Context, venue *Venue) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		UPDATE venues SET
			name = $1, description = $2, latitude = $3, longitude = $4,
			address = $5, city = $6, province = $7, region = $8,
			sport_type = $9, surface_type = $10, venue_type = $11,
			is_public = $12, has_lighting = $13, has_changing_rooms = $14, has_parking = $15,
			opening_hours = $16, prices = $17, updated_at = now()
		WHERE id = $18
		RETURNING updated_at
	`

	err := s.db.QueryRow(ctx, query,
		venue.Name,
		venue.Description,
		venue.Latitude,
		venue.Longitude,
		venue.Address,
		venue.City,
		venue.Province,
		venue.Region,
		venue.SportType,
		venue.SurfaceType,
		venue.VenueType,
		venue.IsPublic,
		venue.HasLighting,
		venue.HasChangingRooms,
		venue.HasParking,
		venue.OpeningHours,
		venue.Prices,
		venue.ID,
	).Scan(&venue.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

// Delete removes the venue together with its images and reports.
// Blob cleanup for the image files is the caller's concern.
func (s *VenuesStore) Delete(ctx context.Context, venueID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM reports WHERE venue_id = $1`, venueID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM images WHERE venue_id = $1`, venueID); err != nil {
			return err
		}

		result, err := tx.Exec(ctx, `DELETE FROM venues WHERE id = $1`, venueID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func (s *VenuesStore) Exists(ctx context.Context, venueID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM venues WHERE id = $1)`, venueID).Scan(&exists)
	return exists, err
}
