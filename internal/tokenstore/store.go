package tokenstore

import (
	"encoding/json"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

// Kind selects one of the three stored credential slots. The values double
// as the persisted key names, matching the web dashboard's storage layout.
type Kind string

const (
	KindAccessToken  Kind = "accessToken"
	KindRefreshToken Kind = "refreshToken"
	KindUserData     Kind = "userData"
)

// Kinds lists every slot a store manages, in a fixed order.
var Kinds = []Kind{KindAccessToken, KindRefreshToken, KindUserData}

// Store persists the session credentials. Implementations never return
// errors to callers: a backend that is unavailable degrades to no-op
// writes and absent reads, so a broken credentials store can never take
// the client down. Clear removes all three slots with no partial state
// observable by subsequent reads.
type Store interface {
	Save(kind Kind, value string)
	Get(kind Kind) (string, bool)
	Clear()
}

// SaveUser serialises the profile into the user-data slot.
func SaveUser(s Store, u *domain.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	s.Save(KindUserData, string(raw))
}

// GetUser decodes the stored profile. It reports false when the slot is
// empty or holds something that is not a profile.
func GetUser(s Store) (*domain.User, bool) {
	raw, ok := s.Get(KindUserData)
	if !ok {
		return nil, false
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false
	}
	return &u, true
}
