package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Vachangowdas/Agrifair1/internal/models"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	return local
}

func TestLocalUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	local := newTestLocal(t)

	_, err := local.FindUserByMobile(ctx, "9876543210")
	require.ErrorIs(t, err, ErrNotFound)

	user := &models.User{Username: "ravi", Mobile: "9876543210", Role: models.RoleUser}
	require.NoError(t, local.CreateUser(ctx, user))
	require.NotEmpty(t, user.ID)
	require.Contains(t, user.ID, "local-")

	found, err := local.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "ravi", found.Username)
	require.Equal(t, user.ID, found.ID)

	err = local.CreateUser(ctx, &models.User{Username: "other", Mobile: "9876543210"})
	require.Error(t, err)
}

func TestLocalCorruptCollectionReadsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	local, err := NewLocal(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o644))

	_, err = local.FindUserByMobile(ctx, "9876543210")
	require.ErrorIs(t, err, ErrNotFound)

	// A write after the corrupt read replaces the collection cleanly.
	require.NoError(t, local.CreateUser(ctx, &models.User{Username: "ravi", Mobile: "9876543210"}))
	found, err := local.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "ravi", found.Username)
}

func TestLocalSetOTPCode(t *testing.T) {
	ctx := context.Background()
	local := newTestLocal(t)

	require.ErrorIs(t, local.SetOTPCode(ctx, "9876543210", "123456"), ErrNotFound)

	require.NoError(t, local.CreateUser(ctx, &models.User{Username: "ravi", Mobile: "9876543210"}))
	require.NoError(t, local.SetOTPCode(ctx, "9876543210", "123456"))

	found, err := local.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "123456", found.OTPCode)

	require.NoError(t, local.SetOTPCode(ctx, "9876543210", ""))
	found, err = local.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Empty(t, found.OTPCode)
}

func TestLocalOTPCodeSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	local, err := NewLocal(dir)
	require.NoError(t, err)

	require.NoError(t, local.CreateUser(ctx, &models.User{Username: "ravi", Mobile: "9876543210"}))
	require.NoError(t, local.SetOTPCode(ctx, "9876543210", "654321"))

	// The mirror must reach disk, not just the in-memory struct.
	reopened, err := NewLocal(dir)
	require.NoError(t, err)
	found, err := reopened.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "654321", found.OTPCode)
}

func TestLocalComplaintsNewestFirst(t *testing.T) {
	ctx := context.Background()
	local := newTestLocal(t)

	base := time.Now()
	for i, trader := range []string{"first", "second", "third"} {
		require.NoError(t, local.CreateComplaint(ctx, &models.Complaint{
			UserID:     "owner",
			TraderName: trader,
			Issue:      "underpaying",
			Date:       base.Add(time.Duration(i) * time.Minute),
			Status:     models.ComplaintPending,
		}))
	}
	require.NoError(t, local.CreateComplaint(ctx, &models.Complaint{
		UserID: "someone-else", TraderName: "x", Issue: "y", Date: base, Status: models.ComplaintPending,
	}))

	complaints, err := local.ListComplaintsByUser(ctx, "owner", 0)
	require.NoError(t, err)
	require.Len(t, complaints, 3)
	require.Equal(t, "third", complaints[0].TraderName)
	require.Equal(t, "first", complaints[2].TraderName)

	limited, err := local.ListComplaintsByUser(ctx, "owner", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestLocalFarmerUpsertReplacesNotDuplicates(t *testing.T) {
	ctx := context.Background()
	local := newTestLocal(t)

	first := &models.FeaturedFarmer{UserID: "u1", Name: "Ravi", Bio: "rice", Date: time.Now()}
	require.NoError(t, local.UpsertFeaturedFarmer(ctx, first))

	second := &models.FeaturedFarmer{UserID: "u1", Name: "Ravi Kumar", Bio: "rice and millet", Date: time.Now()}
	require.NoError(t, local.UpsertFeaturedFarmer(ctx, second))

	farmers, err := local.ListFeaturedFarmers(ctx, 0)
	require.NoError(t, err)
	require.Len(t, farmers, 1)
	require.Equal(t, "Ravi Kumar", farmers[0].Name)
	require.Equal(t, first.ID, farmers[0].ID)
}

func TestLocalFarmerDelete(t *testing.T) {
	ctx := context.Background()
	local := newTestLocal(t)

	require.NoError(t, local.UpsertFeaturedFarmer(ctx, &models.FeaturedFarmer{UserID: "u1", Name: "Ravi", Date: time.Now()}))
	require.NoError(t, local.UpsertFeaturedFarmer(ctx, &models.FeaturedFarmer{UserID: "u2", Name: "Sita", Date: time.Now()}))

	require.NoError(t, local.DeleteFeaturedFarmer(ctx, "u1"))

	farmers, err := local.ListFeaturedFarmers(ctx, 0)
	require.NoError(t, err)
	require.Len(t, farmers, 1)
	require.Equal(t, "u2", farmers[0].UserID)
}
