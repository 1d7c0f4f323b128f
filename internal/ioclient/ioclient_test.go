package ioclient_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/findcoffee/findcoffee/internal/ioclient"
	"github.com/findcoffee/findcoffee/internal/iotesting"
	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/findcoffee/findcoffee/pkg/errcode"
	"github.com/findcoffee/findcoffee/pkg/lifecycle"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ lifecycle.Fetcher = &ioclient.Client{}
	_ lifecycle.Prober  = &ioclient.Client{}
)

func newClient(timeout time.Duration) *ioclient.Client {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptSyncFetchTimeout(timeout)})
	return ioclient.New(cfg)
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "expected *gn.Error, got %T", err)
	return gnErr.Code
}

func TestProbe(t *testing.T) {
	srv := iotesting.NewCatalogServer(t, iotesting.EspressoJSON)
	host, port := srv.HostPort()
	c := newClient(time.Second)
	ctx := context.Background()

	ok, err := c.Probe(ctx, catalog.HealthURL(host, port), time.Second)
	assert.True(t, ok)
	assert.NoError(t, err)

	srv.SetHealthStatus(http.StatusNotFound)
	ok, err = c.Probe(ctx, catalog.HealthURL(host, port), time.Second)
	assert.False(t, ok)
	require.Error(t, err)
	assert.Equal(t, errcode.ProbeError, errCode(t, err))
}

func TestProbeUnroutable(t *testing.T) {
	c := newClient(time.Second)
	timeout := 500 * time.Millisecond

	start := time.Now()
	ok, err := c.Probe(context.Background(),
		catalog.HealthURL("0.0.0.0", "8080"), timeout)
	assert.False(t, ok)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), timeout+time.Second)
}

func TestProbeSlowServer(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	c := newClient(time.Second)
	start := time.Now()
	ok, err := c.Probe(context.Background(), srv.URL, 200*time.Millisecond)
	assert.False(t, ok)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetchRecipes(t *testing.T) {
	srv := iotesting.NewCatalogServer(t, iotesting.CatalogJSON)
	host, port := srv.HostPort()
	c := newClient(time.Second)
	ctx := context.Background()

	res, err := c.FetchRecipes(ctx, "http://"+host, " "+port+" ")
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "Espresso", res[0].Name)
	assert.Equal(t, "Classic", res[0].Category)
	require.NotNil(t, res[0].Notes)
	assert.Equal(t, "Short and strong", *res[0].Notes)
	assert.Equal(t, "60ml", res[0].FinalVolume["double"])
	assert.Equal(t, "14g", res[0].Ingredients["double"]["Coffee"])
	assert.Equal(t, "Tamp", *res[0].Steps["2"].Title)
	assert.Nil(t, res[2].Steps["1"].Description)
	assert.Equal(t, 1, srv.Hits(catalog.RecipesPath))
}

func TestFetchRecipesEmpty(t *testing.T) {
	for _, body := range []string{"[]", " [ ]\n"} {
		srv := iotesting.NewCatalogServer(t, body)
		host, port := srv.HostPort()

		res, err := newClient(time.Second).FetchRecipes(context.Background(), host, port)
		require.NoError(t, err, body)
		assert.NotNil(t, res, body)
		assert.Empty(t, res, body)
	}
}

func TestFetchRecipesErrors(t *testing.T) {
	tests := []struct {
		msg    string
		status int
		body   string
		code   gn.ErrorCode
	}{
		{"not found", http.StatusNotFound, "no such page", errcode.CatalogStatusError},
		{"server error", http.StatusInternalServerError, "", errcode.CatalogStatusError},
		{"bad json", http.StatusOK, `[{"name": "Espresso"`, errcode.CatalogDecodeError},
		{"not an array", http.StatusOK, `{"name": "Espresso"}`, errcode.CatalogDecodeError},
		{"null", http.StatusOK, `null`, errcode.CatalogDecodeError},
		{"trailing garbage", http.StatusOK, iotesting.EspressoJSON + " garbage {{{",
			errcode.CatalogDecodeError},
		{"two arrays", http.StatusOK, "[] []", errcode.CatalogDecodeError},
		{"no category", http.StatusOK, `[{"name": "Espresso"}]`, errcode.CatalogRecordError},
		{"bad step key", http.StatusOK,
			`[{"name":"Espresso","category":"C","steps":{"one":{}}}]`,
			errcode.CatalogRecordError},
		{"duplicate step number", http.StatusOK,
			`[{"name":"Espresso","category":"C","steps":{"1":{},"01":{}}}]`,
			errcode.CatalogRecordError},
	}

	srv := iotesting.NewCatalogServer(t, "[]")
	host, port := srv.HostPort()
	c := newClient(time.Second)

	for _, v := range tests {
		srv.SetCatalog(v.status, v.body)
		res, err := c.FetchRecipes(context.Background(), host, port)
		require.Error(t, err, v.msg)
		assert.Nil(t, res, v.msg)
		assert.Equal(t, v.code, errCode(t, err), v.msg)
	}
}

func TestFetchRecipesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	host, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)
	srv.Close()

	c := newClient(500 * time.Millisecond)
	_, err = c.FetchRecipes(context.Background(), host, port)
	require.Error(t, err)
	assert.Equal(t, errcode.CatalogRequestError, errCode(t, err))
}

func TestFetchFallback(t *testing.T) {
	srv := iotesting.NewCatalogServer(t, "[]")
	host, port := srv.HostPort()
	c := newClient(time.Second)
	ctx := context.Background()

	names, err := c.FetchCoffeeNames(ctx, host, port)
	require.NoError(t, err)
	assert.Equal(t, []string{"Espresso", "Caffe Latte", "Cappuccino"}, names)

	ings, err := c.FetchIngredients(ctx, host, port, "standard", "Caffe Latte")
	require.NoError(t, err)
	assert.Equal(t, "7g", ings["Coffee"])
	assert.Equal(t, 1, srv.Hits("ingredients"))
}

func TestFetchCoffeeNamesNull(t *testing.T) {
	srv := iotesting.NewCatalogServer(t, "[]")
	srv.SetNames("null")
	host, port := srv.HostPort()

	names, err := newClient(time.Second).FetchCoffeeNames(context.Background(), host, port)
	require.Error(t, err)
	assert.Nil(t, names)
	assert.Equal(t, errcode.CatalogDecodeError, errCode(t, err))
}
