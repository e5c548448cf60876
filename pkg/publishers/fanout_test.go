package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id    string
	err   error
	calls int
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return "stub" }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

func TestFanoutPublishesToAll(t *testing.T) {
	a := &stubPublisher{id: "a"}
	b := &stubPublisher{id: "b"}
	fanout := NewFanout([]Publisher{a, nil, b})

	if fanout.Size() != 2 {
		t.Fatalf("expected nil publishers dropped, size=%d", fanout.Size())
	}

	n, err := fanout.Publish(context.Background(), Event{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if n != 2 || a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected both publishers called once, n=%d a=%d b=%d", n, a.calls, b.calls)
	}
}

func TestFanoutCollectsFailures(t *testing.T) {
	ok := &stubPublisher{id: "ok"}
	bad := &stubPublisher{id: "bad", err: errors.New("sink down")}
	fanout := NewFanout([]Publisher{ok, bad})

	n, err := fanout.Publish(context.Background(), Event{})
	if n != 1 {
		t.Fatalf("expected 1 success, got %d", n)
	}
	if err == nil {
		t.Fatalf("expected joined error for failing publisher")
	}
	if ok.calls != 1 {
		t.Fatalf("healthy publisher should still be called")
	}
}

func TestFanoutEmpty(t *testing.T) {
	n, err := NewFanout(nil).Publish(context.Background(), Event{})
	if n != 0 || err != nil {
		t.Fatalf("empty fanout should be a no-op, n=%d err=%v", n, err)
	}
}
