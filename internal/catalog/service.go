package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tickstream-hq/tardis-harvester/internal/domain"
	"github.com/tickstream-hq/tardis-harvester/internal/logger"
	"github.com/tickstream-hq/tardis-harvester/internal/storage"
	"github.com/tickstream-hq/tardis-harvester/pkg/publishers"
)

// Service harvests instrument metadata for watched exchanges: it fetches the
// current instrument set, diffs it against the digest store, and publishes
// added/updated/delisted events downstream.
type Service struct {
	source InstrumentSource
	sink   EventSink
	store  storage.Store
	log    logger.Logger
}

// NewService wires a catalog service from its collaborators.
func NewService(source InstrumentSource, sink EventSink, store storage.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Service{
		source: source,
		sink:   sink,
		store:  store,
		log:    log,
	}
}

// Run executes a harvest pass for all watchlist entries. Failures on one
// exchange do not stop the others; errors are joined.
func (s *Service) Run(ctx context.Context, entries []Entry) error {
	if s == nil || s.source == nil {
		return fmt.Errorf("catalog service is not initialized")
	}
	if len(entries) == 0 {
		return fmt.Errorf("no exchanges configured for harvesting")
	}

	var errs []error
	for _, entry := range entries {
		if err := s.harvestExchange(ctx, entry); err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("exchange harvest failed", "harvest_error", map[string]any{
				"exchange": entry.Exchange,
				"error":    err.Error(),
			})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// harvestExchange performs one fetch-diff-publish cycle for a single exchange.
func (s *Service) harvestExchange(ctx context.Context, entry Entry) error {
	exchange := entry.ExchangeID()

	resp, err := s.source.Instruments(ctx, exchange)
	if err != nil {
		return fmt.Errorf("fetch instruments for %s: %w", exchange, err)
	}

	previous, err := s.store.Symbols(exchange.String())
	if err != nil {
		return fmt.Errorf("list stored symbols for %s: %w", exchange, err)
	}
	remaining := make(map[string]struct{}, len(previous))
	for _, symbol := range previous {
		remaining[symbol] = struct{}{}
	}

	var events []publishers.Event
	matched := 0
	for i := range resp.Results {
		info := resp.Results[i]
		if info.ID == "" || !entry.WantsSymbol(info.ID) {
			continue
		}
		matched++
		delete(remaining, info.ID)

		digest, err := instrumentDigest(info)
		if err != nil {
			return err
		}

		stored, found, err := s.store.Digest(exchange.String(), info.ID)
		if err != nil {
			return fmt.Errorf("read digest for %s/%s: %w", exchange, info.ID, err)
		}

		switch {
		case !found:
			events = append(events, publishers.NewEvent(domain.ChangeAdded, exchange.String(), info.ID, &info))
		case stored != digest:
			events = append(events, publishers.NewEvent(domain.ChangeUpdated, exchange.String(), info.ID, &info))
		}

		if err := s.store.PutDigest(exchange.String(), info.ID, digest); err != nil {
			return fmt.Errorf("store digest for %s/%s: %w", exchange, info.ID, err)
		}
	}

	// Whatever the API stopped reporting is gone.
	for symbol := range remaining {
		if !entry.WantsSymbol(symbol) {
			continue
		}
		events = append(events, publishers.NewEvent(domain.ChangeDelisted, exchange.String(), symbol, nil))
		if err := s.store.Remove(exchange.String(), symbol); err != nil {
			return fmt.Errorf("remove %s/%s: %w", exchange, symbol, err)
		}
	}

	delivered := 0
	var publishErrs []error
	for _, evt := range events {
		n, err := s.sink.Publish(ctx, evt)
		if err != nil {
			publishErrs = append(publishErrs, err)
		}
		delivered += n
	}

	s.log.InfoObj("exchange harvest completed", "harvest_result", map[string]any{
		"exchange":    exchange.String(),
		"instruments": matched,
		"events":      len(events),
		"deliveries":  delivered,
	})

	if len(publishErrs) > 0 {
		return fmt.Errorf("publish events for %s: %w", exchange, errors.Join(publishErrs...))
	}
	return nil
}
