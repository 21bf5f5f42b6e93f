package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Options selects and configures a backend.
type Options struct {
	Driver      string // sqlite (default), memory, or a registered driver
	Path        string // sqlite file
	DatabaseURL string // network databases
}

// Opener constructs a Backend for a registered driver.
type Opener func(ctx context.Context, opts Options) (Backend, error)

var (
	driversMu sync.RWMutex
	drivers   = map[string]Opener{}
)

// Register makes a backend driver available to Open. It panics on duplicates.
func Register(name string, open Opener) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if _, dup := drivers[name]; dup {
		panic("store: Register called twice for driver " + name)
	}
	drivers[name] = open
}

// Drivers lists every driver Open accepts.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := []string{"memory", "sqlite"}
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	switch driver {
	case "", "sqlite":
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite store: empty path")
		}
		s, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemory(), nil
	}

	driversMu.RLock()
	open, ok := drivers[driver]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown store driver %q (have %s)", opts.Driver, strings.Join(Drivers(), ", "))
	}
	return open(ctx, opts)
}
