package publishers

import "context"

// logPublisher writes events to the structured log instead of an external
// sink. Useful as a default sink and when debugging watchlist changes.
type logPublisher struct {
	id  string
	typ string
	log Logger
}

func newLogPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	return &logPublisher{
		id:  cfg.ID,
		typ: TypeLog,
		log: ensureLogger(log),
	}, nil
}

func (l *logPublisher) ID() string   { return l.id }
func (l *logPublisher) Type() string { return l.typ }

func (l *logPublisher) Publish(_ context.Context, evt Event) error {
	l.log.InfoObj("instrument event", "event", evt)
	return nil
}
