package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage tracks the last published content digest per instrument so
// the harvester only emits events when something actually changed. It is a
// write-behind record, never consulted before a fetch.

// Store records instrument content digests keyed by exchange and symbol.
type Store interface {
	Close() error
	// Digest returns the recorded digest for the instrument, if present.
	Digest(exchange, symbol string) (string, bool, error)
	// PutDigest records the digest and refreshes the entry's expiry.
	PutDigest(exchange, symbol, digest string) error
	// Symbols lists symbols currently recorded for the exchange.
	Symbols(exchange string) ([]string, error)
	// Remove drops the instrument entry.
	Remove(exchange, symbol string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

// noopStore remembers nothing, so every instrument always looks new.
type noopStore struct{}

func (noopStore) Close() error                                { return nil }
func (noopStore) Digest(string, string) (string, bool, error) { return "", false, nil }
func (noopStore) PutDigest(string, string, string) error      { return nil }
func (noopStore) Symbols(string) ([]string, error)            { return nil, nil }
func (noopStore) Remove(string, string) error                 { return nil }
