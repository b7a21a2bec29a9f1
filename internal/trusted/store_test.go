package trusted_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unada-gw/trustform/internal/db"
	"github.com/unada-gw/trustform/internal/trusted"
	"github.com/unada-gw/trustform/pkg/logger"
	"github.com/unada-gw/trustform/pkg/pg"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func user(id, mac string, offset time.Duration) trusted.TrustedUser {
	return trusted.TrustedUser{FacebookID: id, MACAddress: mac, LastAccess: epoch.Add(offset)}
}

// testStore runs the behaviour every Store must share. Subtests are
// sequential because they build on each other.
func testStore(t *testing.T, store trusted.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.DeleteAll(ctx))

	alice := user("1001", "00:11:22:33:44:55", 0)
	bob := user("1002", "66:77:88:99:aa:bb", time.Minute)

	t.Run("insert", func(t *testing.T) {
		got, err := store.Insert(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, alice, got)

		got, err = store.Insert(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, bob, got)
	})

	t.Run("insert keeps the existing record", func(t *testing.T) {
		got, err := store.Insert(ctx, user("1001", "de:ad:be:ef:00:01", time.Hour))
		require.NoError(t, err)
		assert.Equal(t, alice, got)

		stored, err := store.FindByID(ctx, "1001")
		require.NoError(t, err)
		assert.Equal(t, alice, stored)
	})

	t.Run("find", func(t *testing.T) {
		got, err := store.FindByMAC(ctx, bob.MACAddress)
		require.NoError(t, err)
		assert.Equal(t, bob, got)

		_, err = store.FindByMAC(ctx, "ff:ff:ff:ff:ff:ff")
		assert.ErrorIs(t, err, trusted.ErrNotFound)
		_, err = store.FindByID(ctx, "nobody")
		assert.ErrorIs(t, err, trusted.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		moved := user("1002", "66:77:88:99:aa:cc", 2*time.Hour)
		require.NoError(t, store.Update(ctx, moved))

		got, err := store.FindByMAC(ctx, moved.MACAddress)
		require.NoError(t, err)
		assert.Equal(t, moved, got)

		_, err = store.FindByMAC(ctx, bob.MACAddress)
		assert.ErrorIs(t, err, trusted.ErrNotFound)

		assert.ErrorIs(t, store.Update(ctx, user("404", "00:00:00:00:00:01", 0)), trusted.ErrNotFound)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		_, err := store.Insert(ctx, user("1000", "00:11:22:33:44:55", 0))
		require.NoError(t, err)

		users, err := store.List(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.FacebookID)
		}
		assert.Equal(t, []string{"1000", "1001", "1002"}, ids)
	})

	t.Run("shared mac resolves to the lowest id", func(t *testing.T) {
		got, err := store.FindByMAC(ctx, "00:11:22:33:44:55")
		require.NoError(t, err)
		assert.Equal(t, "1000", got.FacebookID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "1000"))
		assert.ErrorIs(t, store.Delete(ctx, "1000"), trusted.ErrNotFound)

		got, err := store.FindByMAC(ctx, "00:11:22:33:44:55")
		require.NoError(t, err)
		assert.Equal(t, "1001", got.FacebookID)
	})

	t.Run("insert all keeps existing records", func(t *testing.T) {
		carol := user("1003", "00:00:5e:00:53:01", 3*time.Hour)
		require.NoError(t, store.InsertAll(ctx, []trusted.TrustedUser{
			user("1001", "de:ad:be:ef:00:01", time.Hour),
			carol,
		}))
		require.NoError(t, store.InsertAll(ctx, nil))

		got, err := store.FindByID(ctx, "1001")
		require.NoError(t, err)
		assert.Equal(t, alice, got)
		got, err = store.FindByMAC(ctx, carol.MACAddress)
		require.NoError(t, err)
		assert.Equal(t, carol, got)
	})

	t.Run("delete all", func(t *testing.T) {
		require.NoError(t, store.DeleteAll(ctx))
		users, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	testStore(t, trusted.NewMemoryStore())
}

func TestPGStore(t *testing.T) {
	connURL := os.Getenv("PG_CONN_URL")
	if connURL == "" {
		t.Skip("PG_CONN_URL not set")
	}

	ctx := context.Background()
	cfg := pg.Config{ConnectionString: connURL, RetryAttempts: 1}
	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pg.Migrate(ctx, pool, db.Migrations(), cfg, logger.Discard()))

	testStore(t, trusted.NewPGStore(pool))
}
