package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Image is one photo attached to a venue. At most one image per venue
// carries is_primary, enforced by a partial unique index.
type Image struct {
	ID         int64     `json:"id"`
	VenueID    int64     `json:"venue_id"`
	Path       string    `json:"path"`
	UploadedBy *int64    `json:"uploaded_by,omitempty"`
	IsPrimary  bool      `json:"is_primary"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ImagesStore struct {
	db *pgxpool.Pool
}

// Create inserts the image, marking it primary when the venue has no
// images yet. The decision happens inside the INSERT itself so two
// concurrent first uploads cannot both claim the slot; the loser of the
// race hits the partial unique index and is retried as non-primary.
func (s *ImagesStore) Create(ctx context.Context, image *Image) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO images (venue_id, path, uploaded_by, is_primary)
		VALUES ($1, $2, $3, NOT EXISTS (SELECT 1 FROM images WHERE venue_id = $1))
		RETURNING id, is_primary, uploaded_at
	`

	err := s.db.QueryRow(ctx, query,
		image.VenueID,
		image.Path,
		image.UploadedBy,
	).Scan(&image.ID, &image.IsPrimary, &image.UploadedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		query = `
			INSERT INTO images (venue_id, path, uploaded_by, is_primary)
			VALUES ($1, $2, $3, false)
			RETURNING id, is_primary, uploaded_at
		`
		err = s.db.QueryRow(ctx, query,
			image.VenueID,
			image.Path,
			image.UploadedBy,
		).Scan(&image.ID, &image.IsPrimary, &image.UploadedAt)
	}
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}

	return nil
}

func (s *ImagesStore) GetByID(ctx context.Context, imageID int64) (*Image, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, venue_id, path, uploaded_by, is_primary, uploaded_at
		FROM images
		WHERE id = $1
	`

	var image Image
	err := s.db.QueryRow(ctx, query, imageID).Scan(
		&image.ID,
		&image.VenueID,
		&image.Path,
		&image.UploadedBy,
		&image.IsPrimary,
		&image.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &image, nil
}

func (s *ImagesStore) ListByVenue(ctx context.Context, venueID int64) ([]Image, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, venue_id, path, uploaded_by, is_primary, uploaded_at
		FROM images
		WHERE venue_id = $1
		ORDER BY uploaded_at ASC, id ASC
	`

	rows, err := s.db.Query(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectImages(rows)
}

// ListByVenueIDs fetches images for many venues in one round trip,
// keyed by venue. Venues without images are absent from the map.
func (s *ImagesStore) ListByVenueIDs(ctx context.Context, venueIDs []int64) (map[int64][]Image, error) {
	result := make(map[int64][]Image)
	if len(venueIDs) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT id, venue_id, path, uploaded_by, is_primary, uploaded_at
		FROM images
		WHERE venue_id = ANY($1)
		ORDER BY uploaded_at ASC, id ASC
	`

	rows, err := s.db.Query(ctx, query, venueIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images, err := collectImages(rows)
	if err != nil {
		return nil, err
	}

	for _, image := range images {
		result[image.VenueID] = append(result[image.VenueID], image)
	}

	return result, nil
}

// Delete removes the image and, when it was the primary, promotes the
// earliest remaining image of the venue. The promotion UPDATE re-checks
// that no primary exists, so concurrent deletions cannot promote twice.
func (s *ImagesStore) Delete(ctx context.Context, imageID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		var venueID int64
		var wasPrimary bool
		err := tx.QueryRow(ctx, `
			DELETE FROM images WHERE id = $1
			RETURNING venue_id, is_primary
		`, imageID).Scan(&venueID, &wasPrimary)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if !wasPrimary {
			return nil
		}

		_, err = tx.Exec(ctx, `
			UPDATE images SET is_primary = true
			WHERE id = (
				SELECT id FROM images
				WHERE venue_id = $1
				ORDER BY uploaded_at ASC, id ASC
				LIMIT 1
			)
			AND NOT EXISTS (SELECT 1 FROM images WHERE venue_id = $1 AND is_primary)
		`, venueID)
		return err
	})
}

// SetPrimary makes imageID the single primary of the venue. Clearing
// and setting happen in one transaction; repeating the call is a no-op.
func (s *ImagesStore) SetPrimary(ctx context.Context, venueID, imageID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return withTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE images SET is_primary = false
			WHERE venue_id = $1 AND is_primary AND id <> $2
		`, venueID, imageID); err != nil {
			return err
		}

		result, err := tx.Exec(ctx, `
			UPDATE images SET is_primary = true
			WHERE id = $1 AND venue_id = $2
		`, imageID, venueID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}

		return nil
	})
}

func collectImages(rows pgx.Rows) ([]Image, error) {
	var images []Image
	for rows.Next() {
		var image Image
		err := rows.Scan(
			&image.ID,
			&image.VenueID,
			&image.Path,
			&image.UploadedBy,
			&image.IsPrimary,
			&image.UploadedAt,
		)
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}
