package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"sportmap/internal/store"

	"go.uber.org/zap"
)

// Report reasons form a closed enumeration.
const (
	ReportTypeDoesNotExist  = "does-not-exist"
	ReportTypeIncorrectInfo = "incorrect-info"
	ReportTypeOther         = "other"
)

var reportTypes = map[string]struct{}{
	ReportTypeDoesNotExist:  {},
	ReportTypeIncorrectInfo: {},
	ReportTypeOther:         {},
}

const (
	descriptionMinLen = 10
	descriptionMaxLen = 500

	notifyTimeout = 5 * time.Second
)

// ReportNotifier delivers a new-report notification. Failures must
// never reach the reporter; the service logs and moves on.
type ReportNotifier interface {
	Notify(ctx context.Context, report *store.Report, venue *store.Venue, reporter *store.User) error
}

type ReportService struct {
	store    store.Storage
	notifier ReportNotifier
	policy   Policy
	logger   *zap.SugaredLogger
}

func NewReportService(store store.Storage, notifier ReportNotifier, logger *zap.SugaredLogger) *ReportService {
	return &ReportService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// File records a report against a venue. A user may report a given
// venue only once, whatever the type or description. Notification of
// the venue owner happens in the background and cannot fail the call.
func (s *ReportService) File(ctx context.Context, venueID int64, reporter *store.User, reportType string, description *string) (*store.Report, error) {
	if _, ok := reportTypes[reportType]; !ok {
		return nil, invalidField("report_type", "must be one of does-not-exist, incorrect-info, other")
	}

	description = normalizeOptional(description)
	if description != nil {
		if n := utf8.RuneCountInString(*description); n < descriptionMinLen || n > descriptionMaxLen {
			return nil, invalidField("description", "must be between 10 and 500 characters")
		}
	}

	venue, err := s.store.Venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exists, err := s.store.Reports.HasReport(ctx, venueID, reporter.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReport
	}

	report := &store.Report{
		VenueID:     venueID,
		ReporterID:  reporter.ID,
		ReportType:  reportType,
		Description: description,
	}
	if err := s.store.Reports.Create(ctx, report); err != nil {
		// the unique constraint wins races the HasReport pre-check misses
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrDuplicateReport
		}
		return nil, err
	}
	report.ReporterName = reporter.Username

	s.notifyAsync(report, venue, reporter)

	return report, nil
}

// notifyAsync fires the owner notification on a detached context with a
// bounded timeout, so a slow notifier can neither stall nor fail the
// reporter's request.
func (s *ReportService) notifyAsync(report *store.Report, venue *store.Venue, reporter *store.User) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.Notify(ctx, report, venue, reporter); err != nil {
			s.logger.Errorw("report notification failed",
				"venue_id", venue.ID, "report_id", report.ID, "error", err)
		}
	}()
}

// ListForVenue returns the venue's reports, newest first, reporter
// names attached. Restricted to the venue owner and admins.
func (s *ReportService) ListForVenue(ctx context.Context, venueID int64, caller *store.User) ([]store.Report, error) {
	venue, err := s.store.Venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.policy.CanViewReports(caller, venue.OwnerID) {
		return nil, ErrForbidden
	}

	reports, err := s.store.Reports.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []store.Report{}
	}

	return reports, nil
}

// ListAll returns every report across all venues. Admin only.
func (s *ReportService) ListAll(ctx context.Context, caller *store.User) ([]store.Report, error) {
	if caller == nil || !caller.IsAdmin {
		return nil, ErrForbidden
	}

	reports, err := s.store.Reports.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []store.Report{}
	}

	return reports, nil
}
