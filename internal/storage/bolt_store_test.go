package storage

import (
	"testing"
	"time"
)

func TestBoltStoreRecordsAndExpiresDigests(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		EntryTTL:        1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(dir+"/catalog.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	_, found, err := store.Digest("binance", "BTCUSDT")
	if err != nil || found {
		t.Fatalf("expected no digest, found=%v err=%v", found, err)
	}

	if err := store.PutDigest("binance", "BTCUSDT", "d1"); err != nil {
		t.Fatalf("PutDigest: %v", err)
	}

	digest, found, err := store.Digest("binance", "BTCUSDT")
	if err != nil || !found || digest != "d1" {
		t.Fatalf("expected digest d1, got %q found=%v err=%v", digest, found, err)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	_, found, err = store.Digest("binance", "BTCUSDT")
	if err != nil {
		t.Fatalf("Digest after expiry: %v", err)
	}
	if found {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestBoltStoreSymbolsScopedToExchange(t *testing.T) {
	dir := t.TempDir()

	storeRaw, err := openBolt(dir+"/catalog.db", Options{EntryTTL: time.Hour, CleanupInterval: time.Hour})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	for _, put := range []struct{ exchange, symbol, digest string }{
		{"binance", "BTCUSDT", "d1"},
		{"binance", "ETHUSDT", "d2"},
		{"deribit", "BTC-PERPETUAL", "d3"},
	} {
		if err := store.PutDigest(put.exchange, put.symbol, put.digest); err != nil {
			t.Fatalf("PutDigest(%s/%s): %v", put.exchange, put.symbol, err)
		}
	}

	symbols, err := store.Symbols("binance")
	if err != nil {
		t.Fatalf("Symbols: %v", err)
	}
	if len(symbols) != 2 {
		t.Fatalf("expected 2 binance symbols, got %v", symbols)
	}

	if err := store.Remove("binance", "BTCUSDT"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	symbols, err = store.Symbols("binance")
	if err != nil || len(symbols) != 1 || symbols[0] != "ETHUSDT" {
		t.Fatalf("expected [ETHUSDT] after remove, got %v err=%v", symbols, err)
	}
}

func TestBoltStoreOverwritesDigest(t *testing.T) {
	dir := t.TempDir()

	store, err := openBolt(dir+"/catalog.db", Options{EntryTTL: time.Hour, CleanupInterval: time.Hour})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	if err := store.PutDigest("kraken", "XBT/USD", "old"); err != nil {
		t.Fatalf("PutDigest: %v", err)
	}
	if err := store.PutDigest("kraken", "XBT/USD", "new"); err != nil {
		t.Fatalf("PutDigest overwrite: %v", err)
	}

	digest, found, err := store.Digest("kraken", "XBT/USD")
	if err != nil || !found || digest != "new" {
		t.Fatalf("expected overwritten digest, got %q found=%v err=%v", digest, found, err)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.PutDigest("binance", "BTCUSDT", "d"); err != nil {
		t.Fatalf("noop store PutDigest: %v", err)
	}
	if _, found, err := store.Digest("binance", "BTCUSDT"); err != nil || found {
		t.Fatalf("noop store should remember nothing, found=%v err=%v", found, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
}
