package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Report is a user-submitted flag against a venue. A user may file at
// most one report per venue, enforced by a unique (venue_id, reporter_id)
// constraint.
type Report struct {
	ID          int64     `json:"id"`
	VenueID     int64     `json:"venue_id"`
	ReporterID  int64     `json:"reporter_id"`
	ReportType  string    `json:"report_type"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined fields
	ReporterName string  `json:"reporter_name,omitempty"`
	VenueName    *string `json:"venue_name,omitempty"`
}

type ReportsStore struct {
	db *pgxpool.Pool
}

func (s *ReportsStore) Create(ctx context.Context, report *Report) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		INSERT INTO reports (venue_id, reporter_id, report_type, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at, updated_at
	`

	err := s.db.QueryRow(ctx, query,
		report.VenueID,
		report.ReporterID,
		report.ReportType,
		report.Description,
	).Scan(&report.ID, &report.Status, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}

	return nil
}

// HasReport returns true if this user already reported this venue.
func (s *ReportsStore) HasReport(ctx context.Context, venueID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM reports WHERE venue_id = $1 AND reporter_id = $2)
	`, venueID, userID).Scan(&exists)
	return exists, err
}

func (s *ReportsStore) ListByVenue(ctx context.Context, venueID int64) ([]Report, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT r.id, r.venue_id, r.reporter_id, r.report_type, r.description,
		       r.status, r.created_at, r.updated_at, u.username
		FROM reports r
		JOIN users u ON u.id = r.reporter_id
		WHERE r.venue_id = $1
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := s.db.Query(ctx, query, venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var report Report
		err := rows.Scan(
			&report.ID,
			&report.VenueID,
			&report.ReporterID,
			&report.ReportType,
			&report.Description,
			&report.Status,
			&report.CreatedAt,
			&report.UpdatedAt,
			&report.ReporterName,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

func (s *ReportsStore) ListAll(ctx context.Context) ([]Report, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
		SELECT r.id, r.venue_id, r.reporter_id, r.report_type, r.description,
		       r.status, r.created_at, r.updated_at, u.username, v.name
		FROM reports r
		JOIN users u ON u.id = r.reporter_id
		JOIN venues v ON v.id = r.venue_id
		ORDER BY r.created_at DESC, r.id DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var report Report
		err := rows.Scan(
			&report.ID,
			&report.VenueID,
			&report.ReporterID,
			&report.ReportType,
			&report.Description,
			&report.Status,
			&report.CreatedAt,
			&report.UpdatedAt,
			&report.ReporterName,
			&report.VenueName,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
