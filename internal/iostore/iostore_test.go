package iostore_test

import (
	"context"
	"testing"
	"time"

	"github.com/findcoffee/findcoffee/internal/iostore"
	"github.com/findcoffee/findcoffee/internal/iotesting"
	"github.com/findcoffee/findcoffee/pkg/catalog"
	"github.com/findcoffee/findcoffee/pkg/errcode"
	"github.com/findcoffee/findcoffee/pkg/schema"
	"github.com/findcoffee/findcoffee/pkg/store"
	"github.com/gnames/gn"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipes(t *testing.T, body string) []catalog.Recipe {
	t.Helper()
	var res []catalog.Recipe
	require.NoError(t, json.Unmarshal([]byte(body), &res))
	return res
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "expected *gn.Error, got %T", err)
	return gnErr.Code
}

func TestConnect(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	st := iostore.New()
	ctx := context.Background()

	require.NoError(t, st.Connect(ctx, cfg))
	assert.FileExists(t, cfg.DBFilePath())

	// queries touch every table of a fresh cache
	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{}, counts)
	run, err := st.LastSyncRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, run)

	require.NoError(t, st.Close())
	_, err = st.Counts(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.StoreNotConnectedError, errCode(t, err))
}

func TestConnectUnknownBackend(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	cfg.Cache.Backend = "mysql"

	err := iostore.New().Connect(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, errcode.StoreUnknownBackendError, errCode(t, err))
}

func TestNotConnected(t *testing.T) {
	st := iostore.New()
	ctx := context.Background()

	_, err := st.CoffeeNames(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.StoreNotConnectedError, errCode(t, err))

	_, err = st.Rebuild(ctx, nil, nil)
	assert.Error(t, err)
	assert.NoError(t, st.Close())
}

func TestCoffeeDAO(t *testing.T) {
	st := iotesting.NewStore(t, iotesting.TestConfig(t))
	ctx := context.Background()
	notes := "Short"

	id, err := st.InsertCoffee(ctx, &schema.Coffee{
		Category: "Classic", Name: "Espresso", Notes: &notes,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)
	_, err = st.InsertCoffee(ctx, &schema.Coffee{Category: "Milk", Name: "Latte"})
	require.NoError(t, err)

	tests := []struct {
		msg, name string
		found     bool
	}{
		{"exact", "Espresso", true},
		{"lower case", "espresso", true},
		{"upper case", "ESPRESSO", true},
		{"absent", "Mocha", false},
	}
	for _, v := range tests {
		c, err := st.CoffeeByName(ctx, v.name)
		require.NoError(t, err, v.msg)
		if !v.found {
			assert.Nil(t, c, v.msg)
			continue
		}
		require.NotNil(t, c, v.msg)
		assert.Equal(t, id, c.ID, v.msg)
		assert.Equal(t, "Short", *c.Notes, v.msg)
	}

	names, err := st.CoffeeNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Espresso", "Latte"}, names)

	require.NoError(t, st.DeleteAllCoffees(ctx))
	names, err = st.CoffeeNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSizeIngredientStepDAO(t *testing.T) {
	st := iotesting.NewStore(t, iotesting.TestConfig(t))
	ctx := context.Background()
	vol, qty := "30ml", "7g"
	title := "Grind"

	cid, err := st.InsertCoffee(ctx, &schema.Coffee{Category: "C", Name: "Espresso"})
	require.NoError(t, err)

	_, err = st.InsertSize(ctx, &schema.Size{CoffeeID: cid, Label: "Standard", FinalVolume: &vol})
	require.NoError(t, err)
	_, err = st.InsertIngredient(ctx, &schema.Ingredient{
		CoffeeID: cid, Size: "Standard", Name: "Coffee", Quantity: &qty,
	})
	require.NoError(t, err)
	for _, n := range []int{3, 1, 2} {
		_, err = st.InsertStep(ctx, &schema.Step{CoffeeID: cid, StepNumber: n, Title: &title})
		require.NoError(t, err)
	}

	sizes, err := st.SizesForCoffee(ctx, cid)
	require.NoError(t, err)
	require.Len(t, sizes, 1)
	assert.Equal(t, "30ml", *sizes[0].FinalVolume)

	size, err := st.SizeForCoffeeAndName(ctx, cid, "standard")
	require.NoError(t, err)
	require.NotNil(t, size)
	assert.Equal(t, "Standard", size.Label)

	size, err = st.SizeForCoffeeAndName(ctx, cid, "tall")
	require.NoError(t, err)
	assert.Nil(t, size)

	ings, err := st.IngredientsForCoffeeAndSize(ctx, cid, "STANDARD")
	require.NoError(t, err)
	require.Len(t, ings, 1)
	assert.Equal(t, "Coffee", ings[0].Name)

	ings, err = st.IngredientsForCoffeeAndSize(ctx, cid+100, "standard")
	require.NoError(t, err)
	assert.Empty(t, ings)

	steps, err := st.StepsForCoffee(ctx, cid)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	for i, v := range steps {
		assert.Equal(t, i+1, v.StepNumber)
	}

	require.NoError(t, st.DeleteAllSizes(ctx))
	require.NoError(t, st.DeleteAllIngredients(ctx))
	require.NoError(t, st.DeleteAllSteps(ctx))
	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{Coffees: 1}, counts)
}

func TestRebuild(t *testing.T) {
	st := iotesting.NewStore(t, iotesting.TestConfig(t))
	ctx := context.Background()
	rs := recipes(t, iotesting.CatalogJSON)

	counts, err := st.Rebuild(ctx, rs, nil)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{Coffees: 3, Sizes: 4, Ingredients: 9, Steps: 7}, counts)

	for _, r := range rs {
		c, err := st.CoffeeByName(ctx, r.Name)
		require.NoError(t, err)
		require.NotNil(t, c, r.Name)

		sizes, err := st.SizesForCoffee(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, sizes, len(r.FinalVolume), r.Name)
		for _, s := range sizes {
			assert.Equal(t, r.FinalVolume[s.Label], *s.FinalVolume)
		}

		var ingNum int
		for size, ings := range r.Ingredients {
			rows, err := st.IngredientsForCoffeeAndSize(ctx, c.ID, size)
			require.NoError(t, err)
			assert.Len(t, rows, len(ings))
			ingNum += len(rows)
		}
		assert.Len(t, r.IngredientEntries(), ingNum)

		steps, err := st.StepsForCoffee(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, steps, len(r.Steps))
		for i := 1; i < len(steps); i++ {
			assert.Less(t, steps[i-1].StepNumber, steps[i].StepNumber)
		}
	}

	// a second rebuild replaces everything
	counts, err = st.Rebuild(ctx, recipes(t, iotesting.EspressoJSON), nil)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{Coffees: 1, Sizes: 1, Ingredients: 1}, counts)
	names, err := st.CoffeeNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Espresso"}, names)
}

func TestRebuildSyncRun(t *testing.T) {
	st := iotesting.NewStore(t, iotesting.TestConfig(t))
	ctx := context.Background()

	run, err := st.LastSyncRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, run)

	started := time.Now()
	in := &schema.SyncRun{
		RunID:      uuid.NewString(),
		Host:       "1.2.3.4",
		Port:       "5000",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}
	_, err = st.Rebuild(ctx, recipes(t, iotesting.EspressoJSON), in)
	require.NoError(t, err)

	run, err = st.LastSyncRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, in.RunID, run.RunID)
	assert.Equal(t, 1, run.Coffees)
	assert.Equal(t, 1, run.Sizes)
	assert.Equal(t, 1, run.Ingredients)
	assert.Equal(t, 0, run.Steps)
}

func TestRebuildRollback(t *testing.T) {
	st := iotesting.NewStore(t, iotesting.TestConfig(t))
	ctx := context.Background()

	_, err := st.Rebuild(ctx, recipes(t, iotesting.CatalogJSON), nil)
	require.NoError(t, err)

	// duplicate run IDs violate the unique index and roll back the
	// whole rebuild
	runID := uuid.NewString()
	_, err = st.Rebuild(ctx, recipes(t, iotesting.CatalogJSON),
		&schema.SyncRun{RunID: runID, Host: "h", Port: "1"})
	require.NoError(t, err)

	_, err = st.Rebuild(ctx, recipes(t, iotesting.EspressoJSON),
		&schema.SyncRun{RunID: runID, Host: "h", Port: "1"})
	require.Error(t, err)
	assert.Equal(t, errcode.StoreRebuildError, errCode(t, err))

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Coffees)
}

func TestRebuildCancelled(t *testing.T) {
	st := iotesting.NewStore(t, iotesting.TestConfig(t))
	_, err := st.Rebuild(context.Background(), recipes(t, iotesting.EspressoJSON), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = st.Rebuild(ctx, recipes(t, iotesting.CatalogJSON), nil)
	require.Error(t, err)

	counts, err := st.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Coffees)
}

func TestPostgresBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := iotesting.PostgresTestConfig(t)
	st := iostore.New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := st.Connect(ctx, cfg); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	defer st.Close()

	counts, err := st.Rebuild(ctx, recipes(t, iotesting.CatalogJSON), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Coffees)

	c, err := st.CoffeeByName(ctx, "caffe latte")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Caffe Latte", c.Name)
	assert.Equal(t, "postgres", cfg.Cache.Backend)
	assert.Equal(t, iotesting.TestDatabaseName, cfg.Cache.Postgres.Database)
}
