package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"sportmap/internal/store"
)

// In-memory stand-ins for the postgres stores, mirroring their
// semantics closely enough to exercise the services without a database.

type fakeVenues struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]store.Venue
	images *fakeImages
}

func newFakeVenues(images *fakeImages) *fakeVenues {
	return &fakeVenues{nextID: 1, rows: make(map[int64]store.Venue), images: images}
}

func (f *fakeVenues) Create(ctx context.Context, venue *store.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	venue.ID = f.nextID
	f.nextID++
	venue.CreatedAt = time.Now()
	venue.UpdatedAt = venue.CreatedAt
	f.rows[venue.ID] = *venue
	return nil
}

func (f *fakeVenues) GetByID(ctx context.Context, venueID int64) (*store.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.rows[venueID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &v, nil
}

func (f *fakeVenues) List(ctx context.Context, filter store.VenueFilter) ([]store.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []store.Venue
	for _, v := range f.rows {
		if !matchSubstring(filter.City, v.City) ||
			!matchSubstring(filter.Province, v.Province) ||
			!matchSubstring(filter.Region, v.Region) ||
			!matchExact(filter.SurfaceType, v.SurfaceType) ||
			!matchExact(filter.VenueType, v.VenueType) ||
			!matchExactString(filter.SportType, v.SportType) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeVenues) Update(ctx context.Context, venue *store.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[venue.ID]; !ok {
		return store.ErrNotFound
	}
	venue.UpdatedAt = time.Now()
	f.rows[venue.ID] = *venue
	return nil
}

func (f *fakeVenues) Delete(ctx context.Context, venueID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rows[venueID]; !ok {
		return store.ErrNotFound
	}
	delete(f.rows, venueID)
	if f.images != nil {
		f.images.dropVenue(venueID)
	}
	return nil
}

func (f *fakeVenues) Exists(ctx context.Context, venueID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.rows[venueID]
	return ok, nil
}

func matchSubstring(filter *string, value string) bool {
	if filter == nil {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(*filter))
}

func matchExact(filter *string, value *string) bool {
	if filter == nil {
		return true
	}
	return value != nil && *value == *filter
}

func matchExactString(filter *string, value string) bool {
	if filter == nil {
		return true
	}
	return value == *filter
}

type fakeImages struct {
	mu     sync.Mutex
	nextID int64
	rows   []store.Image
}

func newFakeImages() *fakeImages {
	return &fakeImages{nextID: 1}
}

func (f *fakeImages) Create(ctx context.Context, image *store.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	image.ID = f.nextID
	f.nextID++
	image.UploadedAt = time.Now()
	image.IsPrimary = !f.venueHasImages(image.VenueID)
	f.rows = append(f.rows, *image)
	return nil
}

func (f *fakeImages) GetByID(ctx context.Context, imageID int64) (*store.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, img := range f.rows {
		if img.ID == imageID {
			img := img
			return &img, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeImages) ListByVenue(ctx context.Context, venueID int64) ([]store.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []store.Image
	for _, img := range f.rows {
		if img.VenueID == venueID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeImages) ListByVenueIDs(ctx context.Context, venueIDs []int64) (map[int64][]store.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := make(map[int64]bool, len(venueIDs))
	for _, id := range venueIDs {
		wanted[id] = true
	}

	out := make(map[int64][]store.Image)
	for _, img := range f.rows {
		if wanted[img.VenueID] {
			out[img.VenueID] = append(out[img.VenueID], img)
		}
	}
	return out, nil
}

func (f *fakeImages) Delete(ctx context.Context, imageID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, img := range f.rows {
		if img.ID != imageID {
			continue
		}
		f.rows = append(f.rows[:i], f.rows[i+1:]...)
		if img.IsPrimary {
			f.promoteEarliest(img.VenueID)
		}
		return nil
	}
	return store.ErrNotFound
}

func (f *fakeImages) SetPrimary(ctx context.Context, venueID, imageID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	found := false
	for i := range f.rows {
		if f.rows[i].VenueID != venueID {
			continue
		}
		if f.rows[i].ID == imageID {
			found = true
			f.rows[i].IsPrimary = true
		} else {
			f.rows[i].IsPrimary = false
		}
	}
	if !found {
		return store.ErrNotFound
	}
	return nil
}

// caller holds f.mu
func (f *fakeImages) venueHasImages(venueID int64) bool {
	for _, img := range f.rows {
		if img.VenueID == venueID {
			return true
		}
	}
	return false
}

// caller holds f.mu
func (f *fakeImages) promoteEarliest(venueID int64) {
	for i := range f.rows {
		if f.rows[i].VenueID == venueID {
			f.rows[i].IsPrimary = true
			return
		}
	}
}

func (f *fakeImages) dropVenue(venueID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.rows[:0]
	for _, img := range f.rows {
		if img.VenueID != venueID {
			kept = append(kept, img)
		}
	}
	f.rows = kept
}

type fakeReports struct {
	mu     sync.Mutex
	nextID int64
	rows   []store.Report
}

func newFakeReports() *fakeReports {
	return &fakeReports{nextID: 1}
}

func (f *fakeReports) Create(ctx context.Context, report *store.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.rows {
		if r.VenueID == report.VenueID && r.ReporterID == report.ReporterID {
			return store.ErrConflict
		}
	}

	report.ID = f.nextID
	f.nextID++
	report.Status = "pending"
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	f.rows = append(f.rows, *report)
	return nil
}

func (f *fakeReports) HasReport(ctx context.Context, venueID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.rows {
		if r.VenueID == venueID && r.ReporterID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReports) ListByVenue(ctx context.Context, venueID int64) ([]store.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []store.Report
	for _, r := range f.rows {
		if r.VenueID == venueID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeReports) ListAll(ctx context.Context) ([]store.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]store.Report, len(f.rows))
	copy(out, f.rows)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// fakeBlobs records stored and deleted paths and can be made to fail.
type fakeBlobs struct {
	mu        sync.Mutex
	nextKey   int64
	stored    map[string]bool
	deleted   []string
	failStore bool
	failDel   bool
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{stored: make(map[string]bool)}
}

func (f *fakeBlobs) Store(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failStore {
		return "", errors.New("blob store unavailable")
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.nextKey++
	path := fmt.Sprintf("https://blobs.test/venues/%s-%d", key, f.nextKey)
	f.stored[path] = true
	return path, nil
}

func (f *fakeBlobs) Exists(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stored[path], nil
}

func (f *fakeBlobs) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDel {
		return errors.New("blob delete unavailable")
	}
	delete(f.stored, path)
	f.deleted = append(f.deleted, path)
	return nil
}

// fakeNotifier signals each delivery on a channel so tests can await
// the fire-and-forget goroutine.
type fakeNotifier struct {
	calls chan *store.Report
	err   error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan *store.Report, 4)}
}

func (f *fakeNotifier) Notify(ctx context.Context, report *store.Report, venue *store.Venue, reporter *store.User) error {
	f.calls <- report
	return f.err
}

func newTestStorage() (store.Storage, *fakeVenues, *fakeImages, *fakeReports) {
	images := newFakeImages()
	venues := newFakeVenues(images)
	reports := newFakeReports()

	return store.Storage{
		Venues:  venues,
		Images:  images,
		Reports: reports,
	}, venues, images, reports
}

func ptr[T any](v T) *T { return &v }
