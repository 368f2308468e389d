package eventbus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/billfold/billfold/pkg/ddd"
)

type testEvent struct {
	ddd.BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func newTestEvent(t *testing.T, name string) testEvent {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}
	return testEvent{BaseEvent: ddd.NewBaseEvent(node.Generate()), name: name}
}

func TestPublishRunsHandlersInSubscriptionOrder(t *testing.T) {
	bus := New(zap.NewNop())

	var calls []string
	bus.Subscribe("thing.created", func(ctx context.Context, e ddd.Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe("thing.created", func(ctx context.Context, e ddd.Event) error {
		calls = append(calls, "second")
		return nil
	})

	bus.Publish(context.Background(), newTestEvent(t, "thing.created"))

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("handler calls = %v, want [first second]", calls)
	}
}

func TestPublishSwallowsHandlerErrors(t *testing.T) {
	bus := New(zap.NewNop())

	secondRan := false
	bus.Subscribe("thing.created", func(ctx context.Context, e ddd.Event) error {
		return errors.New("boom")
	})
	bus.Subscribe("thing.created", func(ctx context.Context, e ddd.Event) error {
		secondRan = true
		return nil
	})

	bus.Publish(context.Background(), newTestEvent(t, "thing.created"))

	if !secondRan {
		t.Fatal("a failing handler must not stop later handlers")
	}
}

func TestPublishWithoutSubscribersIsANoop(t *testing.T) {
	bus := New(zap.NewNop())
	bus.Publish(context.Background(), newTestEvent(t, "thing.ignored"))
}

func TestPublishPassesCallerContext(t *testing.T) {
	bus := New(zap.NewNop())

	type ctxKey struct{}
	var got any
	bus.Subscribe("thing.created", func(ctx context.Context, e ddd.Event) error {
		got = ctx.Value(ctxKey{})
		return nil
	})

	ctx := context.WithValue(context.Background(), ctxKey{}, "caller-scope")
	bus.Publish(ctx, newTestEvent(t, "thing.created"))

	if got != "caller-scope" {
		t.Fatalf("handler context value = %v, want caller-scope", got)
	}

	// The event carries its occurrence time through to subscribers.
	e := newTestEvent(t, "thing.created")
	if time.Since(e.OccurredAt()) > time.Minute {
		t.Fatal("event timestamp must be recent")
	}
}
