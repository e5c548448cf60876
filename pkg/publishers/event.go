package publishers

import (
	"time"

	"github.com/tickstream-hq/tardis-harvester/internal/domain"
	"github.com/tickstream-hq/tardis-harvester/pkg/tardis"
)

// Event is the payload published downstream when an instrument is added,
// updated, or delisted. Instrument is nil for delisted events.
type Event struct {
	Exchange   string                 `json:"exchange"`
	Symbol     string                 `json:"symbol"`
	Change     domain.ChangeKind      `json:"change"`
	Instrument *tardis.InstrumentInfo `json:"instrument,omitempty"`
	ObservedAt time.Time              `json:"observed_at"`
}

// NewEvent constructs an Event stamped with the current time.
func NewEvent(change domain.ChangeKind, exchange, symbol string, info *tardis.InstrumentInfo) Event {
	return Event{
		Exchange:   exchange,
		Symbol:     symbol,
		Change:     change,
		Instrument: info,
		ObservedAt: time.Now().UTC(),
	}
}
