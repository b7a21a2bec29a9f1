// Package trusted keeps the social-network users whose devices the gateway
// lets onto its private network, keyed by Facebook ID and looked up by MAC.
package trusted

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores for unknown Facebook IDs and MACs.
var ErrNotFound = errors.New("trusted user not found")

// TrustedUser is a user whose device may join the private SSID.
// MACAddress is stored in lowercase colon form.
type TrustedUser struct {
	FacebookID string    `json:"facebook_id"`
	MACAddress string    `json:"mac_address"`
	LastAccess time.Time `json:"last_access"`
}

// Store persists trusted users.
type Store interface {
	// Insert adds u unless its FacebookID is already stored, in which case
	// the stored record is kept untouched. It returns the stored record.
	Insert(ctx context.Context, u TrustedUser) (TrustedUser, error)
	// InsertAll inserts each user with the same keep-existing rule as Insert.
	InsertAll(ctx context.Context, users []TrustedUser) error
	// Update replaces MAC and last access of an existing user.
	Update(ctx context.Context, u TrustedUser) error
	FindByID(ctx context.Context, facebookID string) (TrustedUser, error)
	// FindByMAC returns one user registered with mac.
	FindByMAC(ctx context.Context, mac string) (TrustedUser, error)
	List(ctx context.Context) ([]TrustedUser, error)
	Delete(ctx context.Context, facebookID string) error
	DeleteAll(ctx context.Context) error
}
