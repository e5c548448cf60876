package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	instrumentBucket = "instruments"
	expiryPrefixLen  = 8
	keySeparator     = "\x00"
)

// boltStore implements Store backed by BoltDB. Keys are
// `exchange \x00 symbol`; values are an 8-byte big-endian expiry followed by
// the digest bytes.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	entryTTL        time.Duration
	cleanupInterval time.Duration
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(instrumentBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		entryTTL:        opts.EntryTTL,
		cleanupInterval: opts.CleanupInterval,
	}
	store.lastCleanup.Store(time.Now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Digest returns the stored digest for the instrument, treating expired
// entries as absent.
func (b *boltStore) Digest(exchange, symbol string) (string, bool, error) {
	if b == nil || b.db == nil {
		return "", false, nil
	}

	if err := b.maybeCleanupExpired(time.Now()); err != nil {
		return "", false, err
	}

	var (
		digest string
		found  bool
	)
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(instrumentBucket))
		if bucket == nil {
			return fmt.Errorf("instrument bucket missing")
		}

		key := entryKey(exchange, symbol)
		value := bucket.Get(key)
		if value == nil {
			return nil
		}

		expiry, payload, ok := decodeEntry(value)
		if !ok || !expiry.After(time.Now()) {
			return bucket.Delete(key)
		}

		digest = string(payload)
		found = true
		return nil
	})
	return digest, found, err
}

// PutDigest records the digest for an instrument with a fresh expiry.
func (b *boltStore) PutDigest(exchange, symbol, digest string) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(instrumentBucket))
		if bucket == nil {
			return fmt.Errorf("instrument bucket missing")
		}
		return bucket.Put(entryKey(exchange, symbol), encodeEntry(now.Add(b.entryTTL), []byte(digest)))
	})
}

// Symbols lists the non-expired symbols recorded for the exchange.
func (b *boltStore) Symbols(exchange string) ([]string, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	var symbols []string
	prefix := []byte(exchange + keySeparator)
	now := time.Now()

	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(instrumentBucket))
		if bucket == nil {
			return fmt.Errorf("instrument bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cursor.Next() {
			expiry, _, ok := decodeEntry(v)
			if !ok || !expiry.After(now) {
				continue
			}
			symbols = append(symbols, string(k[len(prefix):]))
		}
		return nil
	})
	return symbols, err
}

// Remove drops the instrument entry.
func (b *boltStore) Remove(exchange, symbol string) error {
	if b == nil || b.db == nil {
		return nil
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(instrumentBucket))
		if bucket == nil {
			return fmt.Errorf("instrument bucket missing")
		}
		return bucket.Delete(entryKey(exchange, symbol))
	})
}

// maybeCleanupExpired removes expired entries on a fixed cadence to avoid
// unbounded growth when instruments stop being refreshed.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(instrumentBucket))
		if bucket == nil {
			return fmt.Errorf("instrument bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			expiry, _, ok := decodeEntry(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

func entryKey(exchange, symbol string) []byte {
	return []byte(exchange + keySeparator + symbol)
}

func encodeEntry(expiry time.Time, payload []byte) []byte {
	buf := make([]byte, expiryPrefixLen+len(payload))
	binary.BigEndian.PutUint64(buf, uint64(expiry.Unix()))
	copy(buf[expiryPrefixLen:], payload)
	return buf
}

func decodeEntry(value []byte) (time.Time, []byte, bool) {
	if len(value) < expiryPrefixLen {
		return time.Time{}, nil, false
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}, nil, false
	}
	return time.Unix(unix, 0), value[expiryPrefixLen:], true
}
