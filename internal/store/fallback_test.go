package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Vachangowdas/Agrifair1/internal/models"
)

// flakyRemote simulates the cloud store; every method fails while down is set.
type flakyRemote struct {
	down    bool
	users   map[string]models.User
	farmers map[string]models.FeaturedFarmer
}

var _ Store = (*flakyRemote)(nil)

func newFlakyRemote() *flakyRemote {
	return &flakyRemote{
		users:   make(map[string]models.User),
		farmers: make(map[string]models.FeaturedFarmer),
	}
}

var errRemoteDown = errors.New("remote unreachable")

func (r *flakyRemote) FindUserByMobile(ctx context.Context, mobile string) (*models.User, error) {
	if r.down {
		return nil, errRemoteDown
	}
	u, ok := r.users[mobile]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *flakyRemote) CreateUser(ctx context.Context, user *models.User) error {
	if r.down {
		return errRemoteDown
	}
	if user.ID == "" {
		user.ID = "11111111-2222-3333-4444-555555555555"
	}
	r.users[user.Mobile] = *user
	return nil
}

func (r *flakyRemote) SetOTPCode(ctx context.Context, mobile, code string) error {
	if r.down {
		return errRemoteDown
	}
	u, ok := r.users[mobile]
	if !ok {
		return ErrNotFound
	}
	u.OTPCode = code
	r.users[mobile] = u
	return nil
}

func (r *flakyRemote) ListComplaintsByUser(ctx context.Context, userID string, limit int) ([]models.Complaint, error) {
	if r.down {
		return nil, errRemoteDown
	}
	return nil, nil
}

func (r *flakyRemote) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	if r.down {
		return errRemoteDown
	}
	return nil
}

func (r *flakyRemote) ListFeaturedFarmers(ctx context.Context, limit int) ([]models.FeaturedFarmer, error) {
	if r.down {
		return nil, errRemoteDown
	}
	var out []models.FeaturedFarmer
	for _, f := range r.farmers {
		out = append(out, f)
	}
	return out, nil
}

func (r *flakyRemote) UpsertFeaturedFarmer(ctx context.Context, farmer *models.FeaturedFarmer) error {
	if r.down {
		return errRemoteDown
	}
	r.farmers[farmer.UserID] = *farmer
	return nil
}

func (r *flakyRemote) DeleteFeaturedFarmer(ctx context.Context, userID string) error {
	if r.down {
		return errRemoteDown
	}
	delete(r.farmers, userID)
	return nil
}

func TestFallbackPrefersRemoteReads(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote()
	local := newTestLocal(t)
	fb := NewFallback(remote, local)

	remote.users["9876543210"] = models.User{
		BaseModel: models.BaseModel{ID: "remote-uuid"},
		Username:  "cloud-ravi",
		Mobile:    "9876543210",
	}
	require.NoError(t, local.CreateUser(ctx, &models.User{Username: "local-ravi", Mobile: "9876543210"}))

	found, err := fb.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "cloud-ravi", found.Username)
}

func TestFallbackReadsLocalWhenRemoteDown(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote()
	local := newTestLocal(t)
	fb := NewFallback(remote, local)

	require.NoError(t, local.CreateUser(ctx, &models.User{Username: "local-ravi", Mobile: "9876543210"}))

	remote.down = true
	found, err := fb.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "local-ravi", found.Username)
}

func TestFallbackUserLookupFallsThroughOnRemoteNotFound(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote()
	local := newTestLocal(t)
	fb := NewFallback(remote, local)

	// Registered while no cloud store was configured, so the cloud has no row.
	require.NoError(t, local.CreateUser(ctx, &models.User{Username: "ravi", Mobile: "9876543210"}))

	found, err := fb.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "ravi", found.Username)

	_, err = fb.FindUserByMobile(ctx, "1112223334")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFallbackDualWritesUsers(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote()
	local := newTestLocal(t)
	fb := NewFallback(remote, local)

	user := &models.User{Username: "ravi", Mobile: "9876543210", Role: models.RoleUser}
	require.NoError(t, fb.CreateUser(ctx, user))

	// Remote assigned the durable id and the local mirror carries it too.
	require.Equal(t, "11111111-2222-3333-4444-555555555555", user.ID)
	mirrored, err := local.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, user.ID, mirrored.ID)
}

func TestFallbackWritesLocalWhenRemoteDown(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote()
	local := newTestLocal(t)
	fb := NewFallback(remote, local)

	remote.down = true
	user := &models.User{Username: "ravi", Mobile: "9876543210"}
	require.NoError(t, fb.CreateUser(ctx, user))
	require.Contains(t, user.ID, "local-")

	found, err := local.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "ravi", found.Username)
}

func TestFallbackOTPMirrorNeverSurfacesErrors(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote()
	local := newTestLocal(t)

	// Cloud down: mirror write is swallowed.
	remote.down = true
	fb := NewFallback(remote, local)
	require.NoError(t, fb.SetOTPCode(ctx, "9876543210", "123456"))

	// No cloud configured at all: mirror is a no-op.
	localOnly := NewFallback(nil, local)
	require.NoError(t, localOnly.SetOTPCode(ctx, "9876543210", "123456"))
}

func TestFallbackDeleteReachesBothStores(t *testing.T) {
	ctx := context.Background()
	remote := newFlakyRemote()
	local := newTestLocal(t)
	fb := NewFallback(remote, local)

	farmer := &models.FeaturedFarmer{UserID: "u1", Name: "Ravi", Date: time.Now()}
	require.NoError(t, fb.UpsertFeaturedFarmer(ctx, farmer))

	require.NoError(t, fb.DeleteFeaturedFarmer(ctx, "u1"))

	remoteList, err := remote.ListFeaturedFarmers(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, remoteList)

	localList, err := local.ListFeaturedFarmers(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, localList)
}
