package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vachangowdas/Agrifair1/internal/models"
	"github.com/Vachangowdas/Agrifair1/internal/store"
)

func TestParseTagsIdentifiers(t *testing.T) {
	remote := Parse("3b9f4a86-6f0e-4c1e-9d2a-7c5b1e8f0a21")
	require.Equal(t, Remote, remote.Kind)
	require.True(t, remote.IsDurable())

	local := Parse("local-1700000000000000000")
	require.Equal(t, Local, local.Kind)
	require.False(t, local.IsDurable())

	// Anything that is neither a UUID nor prefixed is treated as local and
	// funneled through reconciliation.
	odd := Parse("1726148893421")
	require.Equal(t, Local, odd.Kind)
}

func TestNewLocalIDIsTagged(t *testing.T) {
	id := Parse(NewLocalID())
	require.Equal(t, Local, id.Kind)
}

func TestEnsureDurablePassesThroughRemoteIDs(t *testing.T) {
	ctx := context.Background()
	local, err := store.NewLocal(t.TempDir())
	require.NoError(t, err)
	r := NewResolver(local)

	id, err := r.EnsureDurable(ctx, Parse("3b9f4a86-6f0e-4c1e-9d2a-7c5b1e8f0a21"), "ravi", "9876543210")
	require.NoError(t, err)
	require.Equal(t, "3b9f4a86-6f0e-4c1e-9d2a-7c5b1e8f0a21", id)
}

func TestEnsureDurableCreatesMissingUserOnce(t *testing.T) {
	ctx := context.Background()
	local, err := store.NewLocal(t.TempDir())
	require.NoError(t, err)
	r := NewResolver(local)

	first, err := r.EnsureDurable(ctx, Parse("local-1"), "ravi", "9876543210")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	created, err := local.FindUserByMobile(ctx, "9876543210")
	require.NoError(t, err)
	require.Equal(t, "ravi", created.Username)
	require.Equal(t, models.RoleUser, created.Role)

	// Repeated resolution reuses the existing account instead of minting
	// another one.
	second, err := r.EnsureDurable(ctx, Parse("local-2"), "ravi", "9876543210")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
