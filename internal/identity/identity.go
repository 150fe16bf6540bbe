package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Vachangowdas/Agrifair1/internal/models"
	"github.com/Vachangowdas/Agrifair1/internal/store"
)

// Kind distinguishes identifiers minted by the authoritative cloud store from
// temporary identifiers minted client-side before cloud confirmation.
type Kind int

const (
	// Local marks a temporary identifier minted by the local file store.
	Local Kind = iota
	// Remote marks a durable UUID assigned by the cloud store.
	Remote
)

const localPrefix = "local-"

// ID is a tagged user identifier. Tagging happens once at the boundary where
// the raw string arrives (session token, local store row); everything past
// that point branches on Kind instead of re-inspecting the string.
type ID struct {
	Kind  Kind
	Value string
}

// Parse classifies a raw identifier string.
func Parse(raw string) ID {
	if strings.HasPrefix(raw, localPrefix) {
		return ID{Kind: Local, Value: raw}
	}
	if _, err := uuid.Parse(raw); err == nil {
		return ID{Kind: Remote, Value: raw}
	}
	return ID{Kind: Local, Value: raw}
}

// NewLocalID mints a temporary identifier for rows created while the cloud
// store is unreachable or unconfigured.
func NewLocalID() string {
	return fmt.Sprintf("%s%d", localPrefix, time.Now().UnixNano())
}

func (id ID) String() string { return id.Value }

// IsDurable reports whether the identifier was assigned by the cloud store.
func (id ID) IsDurable() bool { return id.Kind == Remote }

// Resolver exchanges a possibly-local identity for a durable one before a
// record that references it is persisted. Without this, spotlight and
// complaint rows written with offline-minted ids would be orphaned once the
// cloud store takes over.
type Resolver struct {
	users store.UserStore
}

// NewResolver constructs a Resolver over the given user store.
func NewResolver(users store.UserStore) *Resolver {
	return &Resolver{users: users}
}

// EnsureDurable returns the id to key owned records by. A durable id passes
// through untouched. A local id is resolved by mobile; if no user exists yet
// on the authoritative store, one is created on the fly from the known
// username and mobile so the owned record never dangles.
func (r *Resolver) EnsureDurable(ctx context.Context, id ID, username, mobile string) (string, error) {
	if id.IsDurable() {
		return id.Value, nil
	}

	existing, err := r.users.FindUserByMobile(ctx, mobile)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("resolve identity for %s: %w", mobile, err)
	}

	user := &models.User{
		Username: username,
		Mobile:   mobile,
		Role:     models.RoleUser,
	}
	if err := r.users.CreateUser(ctx, user); err != nil {
		return "", fmt.Errorf("create identity for %s: %w", mobile, err)
	}
	return user.ID, nil
}
