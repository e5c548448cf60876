package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/tickstream-hq/tardis-harvester/internal/domain"
	"github.com/tickstream-hq/tardis-harvester/pkg/publishers"
	"github.com/tickstream-hq/tardis-harvester/pkg/tardis"
)

type fakeSource struct {
	instruments map[tardis.Exchange][]tardis.InstrumentInfo
	err         error
}

func (f *fakeSource) Instruments(_ context.Context, exchange tardis.Exchange) (tardis.Response[[]tardis.InstrumentInfo], error) {
	if f.err != nil {
		return tardis.Response[[]tardis.InstrumentInfo]{}, f.err
	}
	return tardis.Response[[]tardis.InstrumentInfo]{Results: f.instruments[exchange]}, nil
}

type fakeSink struct {
	events []publishers.Event
	err    error
}

func (f *fakeSink) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.events = append(f.events, evt)
	if f.err != nil {
		return 0, f.err
	}
	return 1, nil
}

// memStore is an in-memory storage.Store for exercising the diff logic.
type memStore struct {
	digests map[string]string
}

func newMemStore() *memStore {
	return &memStore{digests: make(map[string]string)}
}

func (m *memStore) Close() error { return nil }

func (m *memStore) Digest(exchange, symbol string) (string, bool, error) {
	d, ok := m.digests[exchange+"/"+symbol]
	return d, ok, nil
}

func (m *memStore) PutDigest(exchange, symbol, digest string) error {
	m.digests[exchange+"/"+symbol] = digest
	return nil
}

func (m *memStore) Symbols(exchange string) ([]string, error) {
	var out []string
	prefix := exchange + "/"
	for k := range m.digests {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, k[len(prefix):])
		}
	}
	return out, nil
}

func (m *memStore) Remove(exchange, symbol string) error {
	delete(m.digests, exchange+"/"+symbol)
	return nil
}

func watchedEntry(t *testing.T, exchange string, symbols ...string) Entry {
	t.Helper()
	parsed, err := tardis.ParseExchange(exchange)
	if err != nil {
		t.Fatalf("ParseExchange(%q): %v", exchange, err)
	}
	return Entry{Exchange: parsed.String(), Symbols: symbols, parsed: parsed}
}

func changesOf(events []publishers.Event) map[string]domain.ChangeKind {
	out := make(map[string]domain.ChangeKind, len(events))
	for _, evt := range events {
		out[evt.Symbol] = evt.Change
	}
	return out
}

func TestServiceEmitsAddedOnFirstHarvest(t *testing.T) {
	source := &fakeSource{instruments: map[tardis.Exchange][]tardis.InstrumentInfo{
		tardis.ExchangeBinance: {
			{ID: "BTCUSDT", Exchange: "binance", Active: true},
			{ID: "ETHUSDT", Exchange: "binance", Active: true},
		},
	}}
	sink := &fakeSink{}
	svc := NewService(source, sink, newMemStore(), nil)

	if err := svc.Run(context.Background(), []Entry{watchedEntry(t, "binance")}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 added events, got %d", len(sink.events))
	}
	for _, evt := range sink.events {
		if evt.Change != domain.ChangeAdded {
			t.Fatalf("expected added event, got %s for %s", evt.Change, evt.Symbol)
		}
		if evt.Instrument == nil {
			t.Fatalf("added event should carry the instrument record")
		}
	}
}

func TestServiceSecondHarvestIsQuietWhenNothingChanged(t *testing.T) {
	source := &fakeSource{instruments: map[tardis.Exchange][]tardis.InstrumentInfo{
		tardis.ExchangeBinance: {{ID: "BTCUSDT", Active: true}},
	}}
	store := newMemStore()
	entry := watchedEntry(t, "binance")

	first := &fakeSink{}
	if err := NewService(source, first, store, nil).Run(context.Background(), []Entry{entry}); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	second := &fakeSink{}
	if err := NewService(source, second, store, nil).Run(context.Background(), []Entry{entry}); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(second.events) != 0 {
		t.Fatalf("expected no events on unchanged harvest, got %+v", second.events)
	}
}

func TestServiceDetectsUpdatesAndDelistings(t *testing.T) {
	source := &fakeSource{instruments: map[tardis.Exchange][]tardis.InstrumentInfo{
		tardis.ExchangeDeribit: {
			{ID: "BTC-PERPETUAL", Active: true, TakerFee: 0.0005},
			{ID: "ETH-PERPETUAL", Active: true},
		},
	}}
	store := newMemStore()
	entry := watchedEntry(t, "deribit")

	if err := NewService(source, &fakeSink{}, store, nil).Run(context.Background(), []Entry{entry}); err != nil {
		t.Fatalf("initial Run: %v", err)
	}

	// Fee change on one instrument, the other disappears.
	source.instruments[tardis.ExchangeDeribit] = []tardis.InstrumentInfo{
		{ID: "BTC-PERPETUAL", Active: true, TakerFee: 0.001},
	}

	sink := &fakeSink{}
	if err := NewService(source, sink, store, nil).Run(context.Background(), []Entry{entry}); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	changes := changesOf(sink.events)
	if changes["BTC-PERPETUAL"] != domain.ChangeUpdated {
		t.Fatalf("expected BTC-PERPETUAL updated, got %+v", changes)
	}
	if changes["ETH-PERPETUAL"] != domain.ChangeDelisted {
		t.Fatalf("expected ETH-PERPETUAL delisted, got %+v", changes)
	}

	for _, evt := range sink.events {
		if evt.Change == domain.ChangeDelisted && evt.Instrument != nil {
			t.Fatalf("delisted event should not carry an instrument record")
		}
	}

	// The delisted symbol must be forgotten so it doesn't re-fire.
	if _, found, _ := store.Digest("deribit", "ETH-PERPETUAL"); found {
		t.Fatalf("delisted instrument still recorded in store")
	}
}

func TestServiceHonorsSymbolFilter(t *testing.T) {
	source := &fakeSource{instruments: map[tardis.Exchange][]tardis.InstrumentInfo{
		tardis.ExchangeBinance: {
			{ID: "BTCUSDT"},
			{ID: "DOGEUSDT"},
		},
	}}
	sink := &fakeSink{}
	svc := NewService(source, sink, newMemStore(), nil)

	if err := svc.Run(context.Background(), []Entry{watchedEntry(t, "binance", "BTCUSDT")}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.events) != 1 || sink.events[0].Symbol != "BTCUSDT" {
		t.Fatalf("expected only BTCUSDT event, got %+v", sink.events)
	}
}

func TestServiceContinuesPastFailingExchange(t *testing.T) {
	source := &fakeSource{err: errors.New("api down")}
	sink := &fakeSink{}
	svc := NewService(source, sink, newMemStore(), nil)

	err := svc.Run(context.Background(), []Entry{
		watchedEntry(t, "binance"),
		watchedEntry(t, "deribit"),
	})
	if err == nil {
		t.Fatalf("expected joined error from failing exchanges")
	}
}

func TestServiceRequiresEntries(t *testing.T) {
	svc := NewService(&fakeSource{}, &fakeSink{}, newMemStore(), nil)
	if err := svc.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty watchlist")
	}
}

func TestInstrumentDigestStable(t *testing.T) {
	a := tardis.InstrumentInfo{ID: "BTCUSDT", TakerFee: 0.001}
	b := tardis.InstrumentInfo{ID: "BTCUSDT", TakerFee: 0.001}
	c := tardis.InstrumentInfo{ID: "BTCUSDT", TakerFee: 0.002}

	da, err := instrumentDigest(a)
	if err != nil {
		t.Fatalf("instrumentDigest: %v", err)
	}
	db, _ := instrumentDigest(b)
	dc, _ := instrumentDigest(c)

	if da != db {
		t.Fatalf("equal records should digest equal")
	}
	if da == dc {
		t.Fatalf("differing records should digest differently")
	}
}
