package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sportmap/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reportsFixture struct {
	svc      *ReportService
	venues   *fakeVenues
	reports  *fakeReports
	notifier *fakeNotifier
}

func newReportsFixture() *reportsFixture {
	storage, venues, _, reports := newTestStorage()
	notifier := newFakeNotifier()
	logger := zap.NewNop().Sugar()

	return &reportsFixture{
		svc:      NewReportService(storage, notifier, logger),
		venues:   venues,
		reports:  reports,
		notifier: notifier,
	}
}

func (fx *reportsFixture) seedVenue(t *testing.T, ownerID int64) int64 {
	t.Helper()

	venue := &store.Venue{Name: "Campo A", OwnerID: &ownerID, City: "Milano"}
	require.NoError(t, fx.venues.Create(context.Background(), venue))
	return venue.ID
}

func (fx *reportsFixture) awaitNotification(t *testing.T) *store.Report {
	t.Helper()

	select {
	case report := <-fx.notifier.calls:
		return report
	case <-time.After(2 * time.Second):
		t.Fatal("notification never arrived")
		return nil
	}
}

func TestReportService_File(t *testing.T) {
	reporter := &store.User{ID: 11, Username: "luca"}

	t.Run("valid report", func(t *testing.T) {
		fx := newReportsFixture()
		venueID := fx.seedVenue(t, 7)

		report, err := fx.svc.File(context.Background(), venueID, reporter, ReportTypeIncorrectInfo, ptr("The opening hours listed here are wrong"))
		require.NoError(t, err)
		assert.NotZero(t, report.ID)
		assert.Equal(t, "pending", report.Status)
		assert.Equal(t, reporter.Username, report.ReporterName)

		notified := fx.awaitNotification(t)
		assert.Equal(t, report.ID, notified.ID)
	})

	t.Run("unknown report type", func(t *testing.T) {
		fx := newReportsFixture()
		venueID := fx.seedVenue(t, 7)

		_, err := fx.svc.File(context.Background(), venueID, reporter, "spam", nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "report_type", vErr.Field)
	})

	t.Run("description length bounds", func(t *testing.T) {
		cases := []struct {
			name        string
			description *string
			ok          bool
		}{
			{"absent", nil, true},
			{"blank collapses to absent", ptr("   "), true},
			{"too short", ptr("bad"), false},
			{"multibyte runes counted as characters", ptr("èèèèèèèèè"), false},
			{"ten multibyte runes", ptr("èèèèèèèèèè"), true},
			{"minimum length", ptr("0123456789"), true},
			{"maximum length", ptr(strings.Repeat("x", 500)), true},
			{"too long", ptr(strings.Repeat("x", 501)), false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				fx := newReportsFixture()
				venueID := fx.seedVenue(t, 7)

				_, err := fx.svc.File(context.Background(), venueID, reporter, ReportTypeOther, tc.description)
				if tc.ok {
					assert.NoError(t, err)
				} else {
					var vErr *ValidationError
					require.ErrorAs(t, err, &vErr)
					assert.Equal(t, "description", vErr.Field)
				}
			})
		}
	})

	t.Run("unknown venue", func(t *testing.T) {
		fx := newReportsFixture()

		_, err := fx.svc.File(context.Background(), 404, reporter, ReportTypeOther, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("one report per user and venue", func(t *testing.T) {
		fx := newReportsFixture()
		venueID := fx.seedVenue(t, 7)

		_, err := fx.svc.File(context.Background(), venueID, reporter, ReportTypeDoesNotExist, nil)
		require.NoError(t, err)

		// a different type does not open a second slot
		_, err = fx.svc.File(context.Background(), venueID, reporter, ReportTypeOther, nil)
		assert.ErrorIs(t, err, ErrDuplicateReport)

		// other users and other venues are unaffected
		otherUser := &store.User{ID: 12, Username: "anna"}
		_, err = fx.svc.File(context.Background(), venueID, otherUser, ReportTypeOther, nil)
		assert.NoError(t, err)

		otherVenue := fx.seedVenue(t, 7)
		_, err = fx.svc.File(context.Background(), otherVenue, reporter, ReportTypeOther, nil)
		assert.NoError(t, err)
	})

	t.Run("insert conflict maps to duplicate", func(t *testing.T) {
		fx := newReportsFixture()
		venueID := fx.seedVenue(t, 7)

		// pre-existing row the HasReport pre-check would normally catch;
		// seed it directly so Create itself returns the conflict
		require.NoError(t, fx.reports.Create(context.Background(), &store.Report{
			VenueID: venueID, ReporterID: reporter.ID, ReportType: ReportTypeOther,
		}))
		_, err := fx.svc.File(context.Background(), venueID, reporter, ReportTypeOther, nil)
		assert.ErrorIs(t, err, ErrDuplicateReport)
	})

	t.Run("notifier failure never reaches the reporter", func(t *testing.T) {
		fx := newReportsFixture()
		fx.notifier.err = errors.New("expo is down")
		venueID := fx.seedVenue(t, 7)

		report, err := fx.svc.File(context.Background(), venueID, reporter, ReportTypeOther, nil)
		require.NoError(t, err)
		require.NotNil(t, report)

		fx.awaitNotification(t)
	})
}

func TestReportService_ListForVenue(t *testing.T) {
	owner := &store.User{ID: 7, Username: "marta"}
	other := &store.User{ID: 8, Username: "luca"}
	admin := &store.User{ID: 9, Username: "root", IsAdmin: true}

	t.Run("owner and admin may view, others may not", func(t *testing.T) {
		fx := newReportsFixture()
		venueID := fx.seedVenue(t, owner.ID)

		_, err := fx.svc.File(context.Background(), venueID, other, ReportTypeOther, nil)
		require.NoError(t, err)

		reports, err := fx.svc.ListForVenue(context.Background(), venueID, owner)
		require.NoError(t, err)
		assert.Len(t, reports, 1)

		_, err = fx.svc.ListForVenue(context.Background(), venueID, admin)
		assert.NoError(t, err)

		_, err = fx.svc.ListForVenue(context.Background(), venueID, other)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		fx := newReportsFixture()
		venueID := fx.seedVenue(t, owner.ID)

		reports, err := fx.svc.ListForVenue(context.Background(), venueID, owner)
		require.NoError(t, err)
		assert.NotNil(t, reports)
		assert.Empty(t, reports)
	})

	t.Run("unknown venue", func(t *testing.T) {
		fx := newReportsFixture()

		_, err := fx.svc.ListForVenue(context.Background(), 404, admin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReportService_ListAll(t *testing.T) {
	admin := &store.User{ID: 9, Username: "root", IsAdmin: true}
	user := &store.User{ID: 8, Username: "luca"}

	t.Run("admin only", func(t *testing.T) {
		fx := newReportsFixture()
		venueID := fx.seedVenue(t, 7)

		_, err := fx.svc.File(context.Background(), venueID, user, ReportTypeOther, nil)
		require.NoError(t, err)

		reports, err := fx.svc.ListAll(context.Background(), admin)
		require.NoError(t, err)
		assert.Len(t, reports, 1)

		_, err = fx.svc.ListAll(context.Background(), user)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = fx.svc.ListAll(context.Background(), nil)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
