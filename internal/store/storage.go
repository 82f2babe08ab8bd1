package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Users interface {
		CreateAndInvite(ctx context.Context, user *User, token string, exp time.Duration) error
		Activate(ctx context.Context, token string) error
		GetByID(ctx context.Context, userID int64) (*User, error)
		GetByEmail(ctx context.Context, email string) (*User, error)
		Delete(ctx context.Context, userID int64) error
		SaveRefreshToken(ctx context.Context, userID int64, token string) error
		DeleteRefreshToken(ctx context.Context, userID int64) error
	}
	Venues interface {
		Create(ctx context.Context, venue *Venue) error
		GetByID(ctx context.Context, venueID int64) (*Venue, error)
		List(ctx context.Context, filter VenueFilter) ([]Venue, error)
		Update(ctx context.Context, venue *Venue) error
		Delete(ctx context.Context, venueID int64) error
		Exists(ctx context.Context, venueID int64) (bool, error)
	}
	Images interface {
		Create(ctx context.Context, image *Image) error
		GetByID(ctx context.Context, imageID int64) (*Image, error)
		ListByVenue(ctx context.Context, venueID int64) ([]Image, error)
		ListByVenueIDs(ctx context.Context, venueIDs []int64) (map[int64][]Image, error)
		Delete(ctx context.Context, imageID int64) error
		SetPrimary(ctx context.Context, venueID, imageID int64) error
	}
	Reports interface {
		Create(ctx context.Context, report *Report) error
		HasReport(ctx context.Context, venueID, userID int64) (bool, error)
		ListByVenue(ctx context.Context, venueID int64) ([]Report, error)
		ListAll(ctx context.Context) ([]Report, error)
	}
	PushTokens interface {
		AddOrUpdate(ctx context.Context, userID int64, token string, deviceInfo []byte) error
		GetTokensByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]string, error)
		RemoveByTokenList(ctx context.Context, tokens []string) error
	}
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Users:      &UsersStore{db},
		Venues:     &VenuesStore{db},
		Images:     &ImagesStore{db},
		Reports:    &ReportsStore{db},
		PushTokens: &PushTokensStore{db},
	}
}
