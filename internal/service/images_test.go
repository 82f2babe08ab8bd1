package service

import (
	"context"
	"strings"
	"testing"

	"sportmap/internal/blob"
	"sportmap/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type imagesFixture struct {
	svc    *ImageService
	venues *fakeVenues
	images *fakeImages
	blobs  *fakeBlobs
}

func newImagesFixture(t *testing.T) *imagesFixture {
	t.Helper()

	storage, venues, images, _ := newTestStorage()
	blobs := newFakeBlobs()
	keys, err := blob.NewKeyGenerator("test-salt")
	require.NoError(t, err)
	logger := zap.NewNop().Sugar()

	return &imagesFixture{
		svc:    NewImageService(storage, blobs, keys, logger),
		venues: venues,
		images: images,
		blobs:  blobs,
	}
}

func (fx *imagesFixture) seedVenue(t *testing.T, ownerID int64) int64 {
	t.Helper()

	venue := &store.Venue{Name: "Campo A", OwnerID: &ownerID, City: "Milano"}
	require.NoError(t, fx.venues.Create(context.Background(), venue))
	return venue.ID
}

func jpegUpload(name string) ImageUpload {
	return ImageUpload{
		Filename:    name,
		ContentType: "image/jpeg",
		Size:        1024,
		Reader:      strings.NewReader("fake image bytes"),
	}
}

func TestImageService_Attach(t *testing.T) {
	caller := &store.User{ID: 7, Username: "marta"}

	t.Run("first image becomes primary", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, caller.ID)

		first, err := fx.svc.Attach(context.Background(), venueID, caller, jpegUpload("court.jpg"))
		require.NoError(t, err)
		assert.True(t, first.IsPrimary)

		second, err := fx.svc.Attach(context.Background(), venueID, caller, jpegUpload("court2.jpg"))
		require.NoError(t, err)
		assert.False(t, second.IsPrimary)
	})

	t.Run("unknown venue", func(t *testing.T) {
		fx := newImagesFixture(t)

		_, err := fx.svc.Attach(context.Background(), 404, caller, jpegUpload("court.jpg"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("oversize payload", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, caller.ID)

		upload := jpegUpload("court.jpg")
		upload.Size = MaxImageSize + 1

		_, err := fx.svc.Attach(context.Background(), venueID, caller, upload)
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("extension and content type must agree", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, caller.ID)

		cases := []struct {
			name        string
			filename    string
			contentType string
			wantErr     error
		}{
			{"disallowed extension", "malware.exe", "image/jpeg", ErrImageTypeNotAllowed},
			{"mismatched declaration", "court.png", "image/jpeg", ErrImageTypeNotAllowed},
			{"no extension", "court", "image/jpeg", ErrImageTypeNotAllowed},
			{"charset parameter accepted", "court.png", "image/png; charset=binary", nil},
			{"uppercase extension accepted", "court.JPG", "image/jpeg", nil},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				upload := jpegUpload(tc.filename)
				upload.ContentType = tc.contentType

				_, err := fx.svc.Attach(context.Background(), venueID, caller, upload)
				if tc.wantErr != nil {
					assert.ErrorIs(t, err, tc.wantErr)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("blob store failure leaves no rows", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, caller.ID)

		fx.blobs.failStore = true
		_, err := fx.svc.Attach(context.Background(), venueID, caller, jpegUpload("court.jpg"))
		require.Error(t, err)

		rows, err := fx.images.ListByVenue(context.Background(), venueID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestImageService_Remove(t *testing.T) {
	uploader := &store.User{ID: 7, Username: "marta"}
	other := &store.User{ID: 8, Username: "luca"}
	admin := &store.User{ID: 9, Username: "root", IsAdmin: true}

	t.Run("only the uploader may remove", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, uploader.ID)

		img, err := fx.svc.Attach(context.Background(), venueID, uploader, jpegUpload("court.jpg"))
		require.NoError(t, err)

		assert.ErrorIs(t, fx.svc.Remove(context.Background(), img.ID, other), ErrForbidden)
		assert.ErrorIs(t, fx.svc.Remove(context.Background(), img.ID, admin), ErrForbidden)
		assert.NoError(t, fx.svc.Remove(context.Background(), img.ID, uploader))
	})

	t.Run("removing the primary promotes the earliest remaining image", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, uploader.ID)

		first, err := fx.svc.Attach(context.Background(), venueID, uploader, jpegUpload("a.jpg"))
		require.NoError(t, err)
		second, err := fx.svc.Attach(context.Background(), venueID, uploader, jpegUpload("b.jpg"))
		require.NoError(t, err)
		third, err := fx.svc.Attach(context.Background(), venueID, uploader, jpegUpload("c.jpg"))
		require.NoError(t, err)

		require.NoError(t, fx.svc.Remove(context.Background(), first.ID, uploader))

		rows, err := fx.images.ListByVenue(context.Background(), venueID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, second.ID, rows[0].ID)
		assert.True(t, rows[0].IsPrimary, "earliest survivor takes over as primary")
		assert.Equal(t, third.ID, rows[1].ID)
		assert.False(t, rows[1].IsPrimary)
	})

	t.Run("removing the last image leaves no primary", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, uploader.ID)

		img, err := fx.svc.Attach(context.Background(), venueID, uploader, jpegUpload("a.jpg"))
		require.NoError(t, err)
		require.NoError(t, fx.svc.Remove(context.Background(), img.ID, uploader))

		rows, err := fx.images.ListByVenue(context.Background(), venueID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("unknown image", func(t *testing.T) {
		fx := newImagesFixture(t)

		assert.ErrorIs(t, fx.svc.Remove(context.Background(), 404, uploader), ErrNotFound)
	})

	t.Run("blob delete failure does not block the removal", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, uploader.ID)

		img, err := fx.svc.Attach(context.Background(), venueID, uploader, jpegUpload("a.jpg"))
		require.NoError(t, err)

		fx.blobs.failDel = true
		assert.NoError(t, fx.svc.Remove(context.Background(), img.ID, uploader))
	})
}

func TestImageService_SetPrimary(t *testing.T) {
	caller := &store.User{ID: 7, Username: "marta"}

	t.Run("demotes the previous primary", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, caller.ID)

		first, err := fx.svc.Attach(context.Background(), venueID, caller, jpegUpload("a.jpg"))
		require.NoError(t, err)
		second, err := fx.svc.Attach(context.Background(), venueID, caller, jpegUpload("b.jpg"))
		require.NoError(t, err)

		require.NoError(t, fx.svc.SetPrimary(context.Background(), venueID, second.ID, caller))

		rows, err := fx.images.ListByVenue(context.Background(), venueID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, row.ID == second.ID, row.IsPrimary)
		}
		assert.Equal(t, first.ID, rows[0].ID)
	})

	t.Run("idempotent on the current primary", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, caller.ID)

		img, err := fx.svc.Attach(context.Background(), venueID, caller, jpegUpload("a.jpg"))
		require.NoError(t, err)

		require.NoError(t, fx.svc.SetPrimary(context.Background(), venueID, img.ID, caller))
		require.NoError(t, fx.svc.SetPrimary(context.Background(), venueID, img.ID, caller))

		rows, err := fx.images.ListByVenue(context.Background(), venueID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].IsPrimary)
	})

	t.Run("image must belong to the venue", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueA := fx.seedVenue(t, caller.ID)
		venueB := fx.seedVenue(t, caller.ID)

		img, err := fx.svc.Attach(context.Background(), venueA, caller, jpegUpload("a.jpg"))
		require.NoError(t, err)

		assert.ErrorIs(t, fx.svc.SetPrimary(context.Background(), venueB, img.ID, caller), ErrNotFound)
	})

	t.Run("unknown image", func(t *testing.T) {
		fx := newImagesFixture(t)
		venueID := fx.seedVenue(t, caller.ID)

		assert.ErrorIs(t, fx.svc.SetPrimary(context.Background(), venueID, 404, caller), ErrNotFound)
	})
}
