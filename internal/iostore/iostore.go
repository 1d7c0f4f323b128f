// Package iostore implements the store.Store interface with GORM.
// The cache is an embedded SQLite file by default, or a PostgreSQL
// database when several clients share one cache.
// This is an impure I/O package that implements contracts defined in
// pkg/.
package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/findcoffee/findcoffee/pkg/config"
	"github.com/findcoffee/findcoffee/pkg/schema"
	"github.com/findcoffee/findcoffee/pkg/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// pure Go SQLite driver, registered as "sqlite"
	_ "modernc.org/sqlite"
)

// gormStore implements store.Store.
type gormStore struct {
	db       *gorm.DB
	sqlDB    *sql.DB
	pool     *pgxpool.Pool
	progress bool
}

// Option configures the store.
type Option func(*gormStore)

// OptProgress shows a progress bar while Rebuild inserts recipes.
func OptProgress(b bool) Option {
	return func(s *gormStore) {
		s.progress = b
	}
}

// New creates a store (without connecting).
func New(opts ...Option) store.Store {
	res := &gormStore{}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Connect opens the cache of the configured backend and migrates its
// schema.
func (s *gormStore) Connect(ctx context.Context, cfg *config.Config) error {
	var err error
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch cfg.Cache.Backend {
	case "sqlite":
		err = s.openSQLite(cfg.DBFilePath(), gormCfg)
	case "postgres":
		err = s.openPostgres(ctx, &cfg.Cache.Postgres, gormCfg)
	default:
		return UnknownBackendError(cfg.Cache.Backend)
	}
	if err != nil {
		return err
	}

	if err = schema.Migrate(s.db.WithContext(ctx)); err != nil {
		_ = s.Close()
		return MigrateError(err)
	}

	slog.Info("Cache opened", "backend", cfg.Cache.Backend)
	return nil
}

func (s *gormStore) openSQLite(path string, gormCfg *gorm.Config) error {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}),
		gormCfg,
	)
	if err != nil {
		return ConnectionError("sqlite", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return ConnectionError("sqlite", path, err)
	}
	// one writer at a time
	sqlDB.SetMaxOpenConns(1)

	s.db = db
	s.sqlDB = sqlDB
	return nil
}

func (s *gormStore) openPostgres(
	ctx context.Context,
	cfg *config.PostgresConfig,
	gormCfg *gorm.Config,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
	target := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError("postgres", target, err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError("postgres", target, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError("postgres", target, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormCfg,
	)
	if err != nil {
		_ = sqlDB.Close()
		pool.Close()
		return ConnectionError("postgres", target, err)
	}

	s.db = db
	s.sqlDB = sqlDB
	s.pool = pool
	return nil
}

// Close releases the cache connection.
func (s *gormStore) Close() error {
	var err error
	if s.sqlDB != nil {
		err = s.sqlDB.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
	s.db, s.sqlDB, s.pool = nil, nil, nil
	return err
}

func (s *gormStore) conn(ctx context.Context) (*gorm.DB, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}
	return s.db.WithContext(ctx), nil
}

// Counts returns the number of rows in each recipe table.
func (s *gormStore) Counts(ctx context.Context) (store.Counts, error) {
	var res store.Counts
	db, err := s.conn(ctx)
	if err != nil {
		return res, err
	}

	counters := []struct {
		model any
		dst   *int
	}{
		{&schema.Coffee{}, &res.Coffees},
		{&schema.Size{}, &res.Sizes},
		{&schema.Ingredient{}, &res.Ingredients},
		{&schema.Step{}, &res.Steps},
	}
	for _, v := range counters {
		var n int64
		if err = db.Model(v.model).Count(&n).Error; err != nil {
			return res, QueryError("row counts", err)
		}
		*v.dst = int(n)
	}
	return res, nil
}

// LastSyncRun returns the latest sync run or nil if the cache was never
// synced.
func (s *gormStore) LastSyncRun(ctx context.Context) (*schema.SyncRun, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var runs []schema.SyncRun
	err = db.Order("finished_at DESC").Order("id DESC").Limit(1).Find(&runs).Error
	if err != nil {
		return nil, QueryError("last sync run", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}
