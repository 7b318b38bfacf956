// ABOUTME: Charm KV client wrapper for fitdiary storage.
// ABOUTME: Provides locked reads/writes over the KV store and automatic cloud sync.
package charm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

const (
	// DefaultDBName is the KV database name used when Options.DBName is empty.
	DefaultDBName = "fitdiary"
	// DefaultHost is the Charm server used when Options.Host is empty.
	DefaultHost = "charm.2389.dev"
)

// ErrReadOnly is returned by writes when another process holds the KV lock.
var ErrReadOnly = errors.New("cannot write: database is locked by another process (MCP server?)")

// Store is the subset of *kv.KV the client needs.
type Store interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	IsReadOnly() bool
	Close() error
}

var _ Store = (*kv.KV)(nil)

// Options configures Open.
type Options struct {
	Host     string
	DBName   string
	AutoSync bool
}

// Client stores fitdiary documents in a Charm KV database.
type Client struct {
	kv       Store
	autoSync bool
	mu       sync.RWMutex
}

// Open opens the Charm KV database and pulls remote data unless read-only.
func Open(opts Options) (*Client, error) {
	host := opts.Host
	if host == "" {
		host = DefaultHost
	}
	name := opts.DBName
	if name == "" {
		name = DefaultDBName
	}

	// Set server before opening KV
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaultsFallback(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	c := NewWithStore(db, opts.AutoSync)
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c, nil
}

// NewWithStore wraps an already opened store.
func NewWithStore(store Store, autoSync bool) *Client {
	return &Client{kv: store, autoSync: autoSync}
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled. Callers hold c.mu.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// get returns the value for key, or ok=false when the key is absent.
// Callers hold c.mu.
func (c *Client) get(key string) ([]byte, bool, error) {
	val, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// set stores a value with the given key. Callers hold c.mu for writing.
func (c *Client) set(key string, data []byte) error {
	if c.kv.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.kv.Set([]byte(key), data); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// listByPrefix returns all values with keys matching the given prefix,
// in key order. Callers hold c.mu.
func (c *Client) listByPrefix(prefix string) ([][]byte, error) {
	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}

	prefixBytes := []byte(prefix)
	var matched [][]byte
	for _, key := range keys {
		if bytes.HasPrefix(key, prefixBytes) {
			matched = append(matched, key)
		}
	}
	slices.SortFunc(matched, bytes.Compare)

	results := make([][]byte, 0, len(matched))
	for _, key := range matched {
		val, err := c.kv.Get(key)
		if err != nil {
			return nil, err
		}
		results = append(results, val)
	}
	return results, nil
}
