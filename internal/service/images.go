package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"sportmap/internal/blob"
	"sportmap/internal/store"

	"go.uber.org/zap"
)

// MaxImageSize is the largest accepted upload payload.
const MaxImageSize = 5 << 20 // 5 MiB

// allowedImageTypes maps accepted file extensions to the content type
// each must declare. Extension and content type have to agree.
var allowedImageTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

type ImageService struct {
	store  store.Storage
	blobs  blob.Store
	keys   *blob.KeyGenerator
	policy Policy
	logger *zap.SugaredLogger
}

func NewImageService(store store.Storage, blobs blob.Store, keys *blob.KeyGenerator, logger *zap.SugaredLogger) *ImageService {
	return &ImageService{
		store:  store,
		blobs:  blobs,
		keys:   keys,
		logger: logger,
	}
}

// ImageUpload is one image payload as received from the transport layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Attach validates the payload, stores the blob and records the image.
// The venue's first image automatically becomes primary. Returns the
// stored blob's reference path.
func (s *ImageService) Attach(ctx context.Context, venueID int64, caller *store.User, upload ImageUpload) (*store.Image, error) {
	contentType, err := validateUpload(upload)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.Venues.Exists(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	key, err := s.keys.ImageKey(venueID)
	if err != nil {
		return nil, err
	}

	path, err := s.blobs.Store(ctx, key, contentType, io.LimitReader(upload.Reader, MaxImageSize))
	if err != nil {
		return nil, err
	}

	image := &store.Image{
		VenueID:    venueID,
		Path:       path,
		UploadedBy: &caller.ID,
	}
	if err := s.store.Images.Create(ctx, image); err != nil {
		// orphaned blob; remove it so storage doesn't accumulate strays
		if delErr := s.blobs.Delete(ctx, path); delErr != nil {
			s.logger.Errorw("failed to clean up blob after insert failure", "path", path, "error", delErr)
		}
		return nil, err
	}

	return image, nil
}

// Remove deletes an image. Only the uploader may remove it. When the
// primary image goes away, the earliest remaining image of the venue is
// promoted in its place.
func (s *ImageService) Remove(ctx context.Context, imageID int64, caller *store.User) error {
	image, err := s.store.Images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !s.policy.CanDeleteImage(caller, image.UploadedBy) {
		return ErrForbidden
	}

	exists, err := s.blobs.Exists(ctx, image.Path)
	if err != nil {
		s.logger.Warnw("could not check blob existence", "path", image.Path, "error", err)
	}
	if exists {
		if err := s.blobs.Delete(ctx, image.Path); err != nil {
			s.logger.Errorw("failed to delete image blob", "path", image.Path, "error", err)
		}
	}

	if err := s.store.Images.Delete(ctx, imageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

// SetPrimary designates imageID as the venue's representative photo.
// Calling it again with the same arguments leaves identical state.
func (s *ImageService) SetPrimary(ctx context.Context, venueID, imageID int64, caller *store.User) error {
	image, err := s.store.Images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if image.VenueID != venueID {
		return ErrNotFound
	}

	if err := s.store.Images.SetPrimary(ctx, venueID, imageID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

func validateUpload(upload ImageUpload) (string, error) {
	if upload.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(upload.Filename), "."))
	expected, ok := allowedImageTypes[ext]
	if !ok {
		return "", ErrImageTypeNotAllowed
	}

	declared := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != expected {
		return "", ErrImageTypeNotAllowed
	}

	return expected, nil
}
