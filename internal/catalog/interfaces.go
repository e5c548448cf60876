package catalog

import (
	"context"

	"github.com/tickstream-hq/tardis-harvester/pkg/publishers"
	"github.com/tickstream-hq/tardis-harvester/pkg/tardis"
)

// InstrumentSource fetches instrument metadata for an exchange. Satisfied by
// *tardis.Client.
type InstrumentSource interface {
	Instruments(ctx context.Context, exchange tardis.Exchange) (tardis.Response[[]tardis.InstrumentInfo], error)
}

// EventSink delivers instrument change events downstream. Satisfied by
// *publishers.Fanout.
type EventSink interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}
