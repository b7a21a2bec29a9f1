package trusted_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unada-gw/trustform/internal/forms"
	"github.com/unada-gw/trustform/internal/trusted"
	"github.com/unada-gw/trustform/pkg/validator"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newService(t *testing.T) (*trusted.Service, *trusted.MemoryStore, *clock) {
	t.Helper()
	cat, err := forms.Load("", validator.DefaultRegistry())
	require.NoError(t, err)

	store := trusted.NewMemoryStore()
	clk := &clock{now: epoch}
	svc := trusted.NewService(store, cat.MustEngine(forms.TrustedUser), trusted.WithClock(clk.Now))
	return svc, store, clk
}

func TestService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("normalizes the mac", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newService(t)

		u, created, err := svc.Register(ctx, url.Values{"facebook_id": {"1001"}, "mac_address": {"AA-BB-CC-DD-EE-FF"}})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, user("1001", "aa:bb:cc:dd:ee:ff", 0), u)

		stored, err := store.FindByID(ctx, "1001")
		require.NoError(t, err)
		assert.Equal(t, u, stored)
	})

	t.Run("existing user keeps the first registration", func(t *testing.T) {
		t.Parallel()
		svc, _, clk := newService(t)

		first, _, err := svc.Register(ctx, url.Values{"facebook_id": {"1001"}, "mac_address": {"00:11:22:33:44:55"}})
		require.NoError(t, err)

		clk.now = epoch.Add(time.Hour)
		again, created, err := svc.Register(ctx, url.Values{"facebook_id": {"1001"}, "mac_address": {"66:77:88:99:aa:bb"}})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first, again)

		clk.now = epoch.Add(2 * time.Hour)
		_, created, err = svc.Register(ctx, url.Values{"facebook_id": {"1001"}, "mac_address": {"00:11:22:33:44:55"}})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("stamps keep microsecond precision", func(t *testing.T) {
		t.Parallel()
		svc, _, clk := newService(t)

		clk.now = epoch.Add(1500 * time.Nanosecond)
		u, created, err := svc.Register(ctx, url.Values{"facebook_id": {"1001"}, "mac_address": {"00:11:22:33:44:55"}})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, epoch.Add(time.Microsecond), u.LastAccess)
	})

	t.Run("invalid form", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newService(t)

		_, _, err := svc.Register(ctx, url.Values{"facebook_id": {"abc"}, "mac_address": {"00:11-22:33-44:55"}})
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"facebook_id", "mac_address"}, verrs.Fields())
		assert.Len(t, verrs.Get("mac_address"), 1)
		assert.True(t, strings.HasPrefix(verrs.Get("mac_address")[0], "Use six hex pairs"))

		users, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, _, err := svc.Register(ctx, url.Values{})
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, validator.RuleRequired, verrs.GetErrors("facebook_id")[0].Rule)
		assert.Equal(t, validator.RuleRequired, verrs.GetErrors("mac_address")[0].Rule)
	})
}

func TestService_RegisterAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores every valid registration", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newService(t)

		_, _, err := svc.Register(ctx, url.Values{"facebook_id": {"1001"}, "mac_address": {"00:11:22:33:44:55"}})
		require.NoError(t, err)

		n, err := svc.RegisterAll(ctx, []url.Values{
			{"facebook_id": {"1001"}, "mac_address": {"de:ad:be:ef:00:01"}},
			{"facebook_id": {"1002"}, "mac_address": {"66-77-88-99-AA-BB"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		users, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []trusted.TrustedUser{
			user("1001", "00:11:22:33:44:55", 0),
			user("1002", "66:77:88:99:aa:bb", 0),
		}, users)
	})

	t.Run("one invalid entry stores nothing", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newService(t)

		_, err := svc.RegisterAll(ctx, []url.Values{
			{"facebook_id": {"1001"}, "mac_address": {"00:11:22:33:44:55"}},
			{"facebook_id": {"1002"}, "mac_address": {"00:11-22:33-44:55"}},
			{"mac_address": {"66:77:88:99:aa:bb"}},
		})
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"1.mac_address", "2.facebook_id"}, verrs.Fields())

		users, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		n, err := svc.RegisterAll(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestService_Touch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, clk := newService(t)
	_, _, err := svc.Register(ctx, url.Values{"facebook_id": {"1001"}, "mac_address": {"00:11:22:33:44:55"}})
	require.NoError(t, err)

	clk.now = epoch.Add(90 * time.Minute)
	u, err := svc.Touch(ctx, "00-11-22-33-44-55")
	require.NoError(t, err)
	assert.Equal(t, epoch.Add(90*time.Minute), u.LastAccess)

	found, err := svc.Lookup(ctx, "00:11:22:33:44:55")
	require.NoError(t, err)
	assert.Equal(t, u, found)

	_, err = svc.Touch(ctx, "66:77:88:99:aa:bb")
	assert.ErrorIs(t, err, trusted.ErrNotFound)

	_, err = svc.Touch(ctx, "00:11-22:33-44:55")
	assert.True(t, validator.IsValidationError(err))
}

func TestService_Remove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newService(t)
	_, _, err := svc.Register(ctx, url.Values{"facebook_id": {"1001"}, "mac_address": {"00:11:22:33:44:55"}})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "1001"))
	assert.ErrorIs(t, svc.Remove(ctx, "1001"), trusted.ErrNotFound)

	err = svc.Remove(ctx, "  ")
	assert.True(t, validator.IsValidationError(err))

	err = svc.Remove(ctx, strings.Repeat("9", 65))
	assert.Equal(t, validator.RuleMax, validator.ExtractValidationErrors(err)[0].Rule)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
