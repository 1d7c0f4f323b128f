package iosync_test

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/findcoffee/findcoffee/internal/ioclient"
	"github.com/findcoffee/findcoffee/internal/iosync"
	"github.com/findcoffee/findcoffee/internal/iotesting"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/findcoffee/findcoffee/pkg/errcode"
	"github.com/findcoffee/findcoffee/pkg/lifecycle"
	"github.com/findcoffee/findcoffee/pkg/store"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	cfg   *config.Config
	srv   *iotesting.CatalogServer
	store store.Store
	host  string
	port  string
}

func newFixture(t *testing.T, body string) *fixture {
	t.Helper()
	cfg := iotesting.TestConfig(t)
	cfg.Update([]config.Option{
		config.OptSyncProbeTimeout(time.Second),
		config.OptSyncFetchTimeout(time.Second),
	})
	srv := iotesting.NewCatalogServer(t, body)
	host, port := srv.HostPort()
	return &fixture{
		cfg:   cfg,
		srv:   srv,
		store: iotesting.NewStore(t, cfg),
		host:  host,
		port:  port,
	}
}

func (f *fixture) synchronizer(opts ...iosync.Option) lifecycle.Synchronizer {
	cl := ioclient.New(f.cfg)
	return iosync.New(f.cfg, f.store, cl, cl, opts...)
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "expected *gn.Error, got %T", err)
	return gnErr.Code
}

// dump renders the cache content without generated IDs.
func dump(t *testing.T, st store.Store) []string {
	t.Helper()
	ctx := context.Background()
	var res []string

	names, err := st.CoffeeNames(ctx)
	require.NoError(t, err)
	for _, name := range names {
		c, err := st.CoffeeByName(ctx, name)
		require.NoError(t, err)
		res = append(res, fmt.Sprintf("coffee|%s|%s", c.Name, c.Category))

		sizes, err := st.SizesForCoffee(ctx, c.ID)
		require.NoError(t, err)
		for _, s := range sizes {
			res = append(res, fmt.Sprintf("size|%s|%s|%s", c.Name, s.Label, *s.FinalVolume))
			ings, err := st.IngredientsForCoffeeAndSize(ctx, c.ID, s.Label)
			require.NoError(t, err)
			for _, i := range ings {
				res = append(res,
					fmt.Sprintf("ing|%s|%s|%s|%s", c.Name, i.Size, i.Name, *i.Quantity))
			}
		}

		steps, err := st.StepsForCoffee(ctx, c.ID)
		require.NoError(t, err)
		for _, s := range steps {
			res = append(res, fmt.Sprintf("step|%s|%d", c.Name, s.StepNumber))
		}
	}
	sort.Strings(res)
	return res
}

func TestSyncEspresso(t *testing.T) {
	f := newFixture(t, iotesting.EspressoJSON)
	ctx := context.Background()

	res, err := f.synchronizer().Sync(ctx, "http://"+f.host, f.port)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, f.host, res.Host)
	assert.Equal(t, store.Counts{Coffees: 1, Sizes: 1, Ingredients: 1}, res.Counts)

	names, err := f.store.CoffeeNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Espresso"}, names)

	c, err := f.store.CoffeeByName(ctx, "Espresso")
	require.NoError(t, err)
	require.NotNil(t, c)

	sizes, err := f.store.SizesForCoffee(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, sizes, 1)
	assert.Equal(t, "standard", sizes[0].Label)
	assert.Equal(t, "30ml", *sizes[0].FinalVolume)

	ings, err := f.store.IngredientsForCoffeeAndSize(ctx, c.ID, "standard")
	require.NoError(t, err)
	require.Len(t, ings, 1)
	assert.Equal(t, "Coffee", ings[0].Name)
	assert.Equal(t, "7g", *ings[0].Quantity)

	steps, err := f.store.StepsForCoffee(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, steps)

	run, err := f.store.LastSyncRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, res.RunID, run.RunID)
	assert.Equal(t, f.port, run.Port)
}

func TestSyncIdempotent(t *testing.T) {
	f := newFixture(t, iotesting.CatalogJSON)
	sn := f.synchronizer()
	ctx := context.Background()

	res, err := sn.Sync(ctx, f.host, f.port)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{Coffees: 3, Sizes: 4, Ingredients: 9, Steps: 7}, res.Counts)
	first := dump(t, f.store)

	_, err = sn.Sync(ctx, f.host, f.port)
	require.NoError(t, err)
	assert.Equal(t, first, dump(t, f.store))
	assert.Equal(t, 2, f.srv.Hits("/api/coffee_recipes"))
}

func TestSyncProbeFailureKeepsCache(t *testing.T) {
	f := newFixture(t, iotesting.CatalogJSON)
	sn := f.synchronizer()
	ctx := context.Background()

	_, err := sn.Sync(ctx, f.host, f.port)
	require.NoError(t, err)
	before := dump(t, f.store)

	f.srv.SetHealthStatus(http.StatusNotFound)
	f.srv.SetCatalog(http.StatusOK, iotesting.EspressoJSON)
	res, err := sn.Sync(ctx, f.host, f.port)
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, errcode.SyncUnreachableError, errCode(t, err))
	assert.Equal(t, lifecycle.Done, sn.State())

	assert.Equal(t, before, dump(t, f.store))
	assert.Equal(t, 1, f.srv.Hits("/api/coffee_recipes"))
}

func TestSyncFetchFailureKeepsCache(t *testing.T) {
	f := newFixture(t, iotesting.CatalogJSON)
	sn := f.synchronizer()
	ctx := context.Background()

	_, err := sn.Sync(ctx, f.host, f.port)
	require.NoError(t, err)
	before := dump(t, f.store)

	tests := []struct {
		msg    string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"malformed json", http.StatusOK, `[{"name":`},
		{"null catalog", http.StatusOK, "null"},
		{"trailing data", http.StatusOK, iotesting.EspressoJSON + " garbage {{{"},
		{"malformed record", http.StatusOK, `[{"name":"Mocha"}]`},
	}
	for _, v := range tests {
		f.srv.SetCatalog(v.status, v.body)
		_, err = sn.Sync(ctx, f.host, f.port)
		require.Error(t, err, v.msg)
		assert.Equal(t, errcode.SyncFetchError, errCode(t, err), v.msg)
		assert.Equal(t, before, dump(t, f.store), v.msg)
	}
}

func TestSyncEmptyCatalog(t *testing.T) {
	f := newFixture(t, iotesting.CatalogJSON)
	sn := f.synchronizer()
	ctx := context.Background()

	_, err := sn.Sync(ctx, f.host, f.port)
	require.NoError(t, err)

	f.srv.SetCatalog(http.StatusOK, "[]")
	res, err := sn.Sync(ctx, f.host, f.port)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{}, res.Counts)
	assert.Empty(t, dump(t, f.store))
}

func TestSyncBadAddress(t *testing.T) {
	f := newFixture(t, iotesting.EspressoJSON)

	_, err := f.synchronizer().Sync(context.Background(), "  ", f.port)
	require.Error(t, err)
	assert.Equal(t, errcode.ServerAddressError, errCode(t, err))
	assert.Equal(t, 0, f.srv.Hits("/api"))
}

func TestSyncStates(t *testing.T) {
	f := newFixture(t, iotesting.EspressoJSON)
	var mu sync.Mutex
	var states []lifecycle.SyncState
	sn := f.synchronizer(iosync.OptOnState(func(s lifecycle.SyncState) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s)
	}))
	assert.Equal(t, lifecycle.Idle, sn.State())

	_, err := sn.Sync(context.Background(), f.host, f.port)
	require.NoError(t, err)
	assert.Equal(t,
		[]lifecycle.SyncState{lifecycle.Checking, lifecycle.Syncing, lifecycle.Done},
		states)

	states = nil
	f.srv.SetHealthStatus(http.StatusServiceUnavailable)
	_, err = sn.Sync(context.Background(), f.host, f.port)
	require.Error(t, err)
	assert.Equal(t, []lifecycle.SyncState{lifecycle.Checking, lifecycle.Done}, states)
}

func TestSyncMinDuration(t *testing.T) {
	f := newFixture(t, iotesting.EspressoJSON)
	f.cfg.Update([]config.Option{config.OptSyncMinDuration(300 * time.Millisecond)})
	sn := f.synchronizer()

	start := time.Now()
	res, err := sn.Sync(context.Background(), f.host, f.port)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
	assert.GreaterOrEqual(t, res.Duration, 300*time.Millisecond)

	// failures are padded too
	f.srv.SetHealthStatus(http.StatusNotFound)
	start = time.Now()
	_, err = sn.Sync(context.Background(), f.host, f.port)
	require.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
}

func TestSyncCancelled(t *testing.T) {
	f := newFixture(t, iotesting.EspressoJSON)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.synchronizer().Sync(ctx, f.host, f.port)
	require.Error(t, err)
	assert.Equal(t, errcode.SyncCancelledError, errCode(t, err))

	counts, err := f.store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.Counts{}, counts)
}
