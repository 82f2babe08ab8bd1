package notifications

import (
	"context"
	"fmt"
	"strconv"

	"sportmap/internal/mailer"
	"sportmap/internal/store"

	"github.com/9ssi7/exponent"
	"go.uber.org/zap"
)

// ReportNotifier tells a venue owner that a report was filed against
// their venue, by email and by Expo push. Callers treat it as
// fire-and-forget; errors are returned only for logging.
type ReportNotifier struct {
	store  store.Storage
	mail   mailer.Client
	push   PushSender
	logger *zap.SugaredLogger
}

func NewReportNotifier(store store.Storage, mail mailer.Client, push PushSender, logger *zap.SugaredLogger) *ReportNotifier {
	return &ReportNotifier{
		store:  store,
		mail:   mail,
		push:   push,
		logger: logger,
	}
}

func (n *ReportNotifier) Notify(ctx context.Context, report *store.Report, venue *store.Venue, reporter *store.User) error {
	if venue.OwnerID == nil {
		// seeded venues have no owner to notify
		return nil
	}

	owner, err := n.store.Users.GetByID(ctx, *venue.OwnerID)
	if err != nil {
		return fmt.Errorf("load venue owner: %w", err)
	}

	vars := struct {
		Username     string
		ReporterName string
		VenueName    string
		ReportType   string
		Description  string
	}{
		Username:     owner.Username,
		ReporterName: reporter.Username,
		VenueName:    venue.Name,
		ReportType:   report.ReportType,
	}
	if report.Description != nil {
		vars.Description = *report.Description
	}

	if _, err := n.mail.Send(mailer.ReportNoticeTemplate, owner.Username, owner.Email, vars); err != nil {
		n.logger.Errorw("error sending report email", "venue_id", venue.ID, "error", err)
	}

	return n.pushToOwner(ctx, owner.ID, report, venue)
}

func (n *ReportNotifier) pushToOwner(ctx context.Context, ownerID int64, report *store.Report, venue *store.Venue) error {
	tokensMap, err := n.store.PushTokens.GetTokensByUserIDs(ctx, []int64{ownerID})
	if err != nil {
		return err
	}

	tokens := dedupe(tokensMap[ownerID])
	if len(tokens) == 0 {
		return nil
	}

	title := "Your venue was reported"
	body := fmt.Sprintf("%q received a %s report", venue.Name, report.ReportType)
	venueIDStr := strconv.FormatInt(venue.ID, 10)

	msgs := make([]*exponent.Message, 0, len(tokens))
	for _, t := range tokens {
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data: map[string]string{
				"type":     "venue_report",
				"venue_id": venueIDStr,
				"screen":   fmt.Sprintf("venues/%s", venueIDStr),
			},
		})
	}

	if _, err := n.push.Publish(ctx, msgs); err != nil {
		return err
	}
	return nil
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
