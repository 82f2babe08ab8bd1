package service

import (
	"sportmap/internal/blob"
	"sportmap/internal/store"

	"go.uber.org/zap"
)

// Services bundles the business-logic layer handed to the handlers.
type Services struct {
	Venues  *VenueService
	Images  *ImageService
	Reports *ReportService
}

func New(storage store.Storage, blobs blob.Store, keys *blob.KeyGenerator, notifier ReportNotifier, logger *zap.SugaredLogger) Services {
	return Services{
		Venues:  NewVenueService(storage, blobs, logger),
		Images:  NewImageService(storage, blobs, keys, logger),
		Reports: NewReportService(storage, notifier, logger),
	}
}
