package blob

import (
	"time"

	"github.com/speps/go-hashids/v2"
)

// KeyGenerator produces short opaque blob keys from the venue id and
// upload time, so paths leak neither sequence nor count.
type KeyGenerator struct {
	hd *hashids.HashID
}

func NewKeyGenerator(salt string) (*KeyGenerator, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 12

	hd, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}

	return &KeyGenerator{hd: hd}, nil
}

func (g *KeyGenerator) ImageKey(venueID int64) (string, error) {
	return g.hd.EncodeInt64([]int64{venueID, time.Now().UnixNano()})
}
