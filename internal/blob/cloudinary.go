package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const uploadFolder = "venues"

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cld *cloudinary.Cloudinary) *CloudinaryStore {
	return &CloudinaryStore{cld: cld}
}

// Store uploads the blob under a controlled public ID and returns its
// secure URL as the reference path.
func (s *CloudinaryStore) Store(ctx context.Context, key string, contentType string, reader io.Reader) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:    uploadFolder,
		PublicID:  key,
		Overwrite: api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (s *CloudinaryStore) Exists(ctx context.Context, path string) (bool, error) {
	publicID, err := extractPublicIDFromURL(path)
	if err != nil {
		return false, err
	}

	resp, err := s.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: publicID})
	if err != nil {
		return false, err
	}
	if resp.Error.Message != "" {
		return false, nil
	}
	return resp.PublicID != "", nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, path string) error {
	publicID, err := extractPublicIDFromURL(path)
	if err != nil {
		return fmt.Errorf("failed to extract public ID: %w", err)
	}

	_, err = s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	return nil
}

// extractPublicIDFromURL recovers the Cloudinary public ID from a
// delivery URL: everything after the "upload" segment, minus the
// version prefix and the file extension.
func extractPublicIDFromURL(path string) (string, error) {
	parsedURL, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part != "upload" || i+1 >= len(pathParts) {
			continue
		}

		rest := pathParts[i+1:]
		// skip the version segment (e.g. v1712345678); a folder name
		// starting with "v" must not be mistaken for one
		if len(rest) > 1 && isVersionSegment(rest[0]) {
			rest = rest[1:]
		}

		publicID := strings.Join(rest, "/")
		if ext := strings.LastIndex(publicID, "."); ext > 0 {
			publicID = publicID[:ext]
		}
		return publicID, nil
	}

	return "", errors.New("failed to extract public ID from URL")
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
