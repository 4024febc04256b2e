package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/dropzone/internal/config"
	"github.com/aretw0/dropzone/internal/runtime"
	"github.com/aretw0/dropzone/pkg/adapters/file"
	"github.com/aretw0/dropzone/pkg/adapters/memory"
	"github.com/aretw0/dropzone/pkg/adapters/redis"
	"github.com/aretw0/dropzone/pkg/adapters/sqlite"
	"github.com/aretw0/dropzone/pkg/catalog"
	"github.com/aretw0/dropzone/pkg/domain"
	"github.com/aretw0/dropzone/pkg/ports"
	"github.com/aretw0/dropzone/pkg/session"
)

// newStore builds the configured snapshot store. The closer releases any
// connection it holds.
func newStore(c config.Config) (ports.SnapshotStore, ports.DistributedLocker, func() error, error) {
	nop := func() error { return nil }
	switch c.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil, nop, nil
	case config.BackendFile:
		return file.New(c.Store.Dir), nil, nop, nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(c.Store.SQLitePath), 0o755); err != nil {
			return nil, nil, nop, err
		}
		store, err := sqlite.Open(c.Store.SQLitePath)
		if err != nil {
			return nil, nil, nop, err
		}
		return store, nil, store.Close, nil
	case config.BackendRedis:
		store := redis.New(c.Store.Redis.Addr, c.Store.Redis.Password, c.Store.Redis.DB,
			redis.WithTTL(c.Store.Redis.TTL),
			redis.WithPrefix(c.Store.Redis.Prefix),
		)
		return store, redis.NewLocker(store.Client(), c.Store.Redis.Prefix), store.Close, nil
	default:
		return nil, nil, nop, fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
}

// newManager wires the store, locker and hooks into a session manager.
func newManager(c config.Config, hooks domain.LifecycleHooks) (*session.Manager, func() error, error) {
	store, locker, closer, err := newStore(c)
	if err != nil {
		return nil, nil, err
	}
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithLockTTL(c.LockTTL),
		session.WithControllerOptions(
			runtime.WithLogger(logger),
			runtime.WithLifecycleHooks(hooks),
		),
	}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}
	return session.NewManager(store, opts...), closer, nil
}

// loadCatalog returns the built-in catalog extended by c.Catalog, if set.
func loadCatalog(c config.Config) (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	f, err := catalog.ReadFile(c.Catalog)
	if err != nil {
		return nil, err
	}
	return catalog.Default().Extend(f)
}
