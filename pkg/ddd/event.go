package ddd

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
)

// Event is an immutable record of something that happened to one aggregate.
// Ownership transfers to the bus on publish; no back-reference is retained.
type Event interface {
	EventID() string
	EventName() string
	AggregateID() snowflake.ID
	OccurredAt() time.Time
}

// BaseEvent carries the identity fields shared by every concrete event.
// Embed it and implement EventName on the concrete type.
type BaseEvent struct {
	ID   string       `json:"event_id"`
	Aggr snowflake.ID `json:"aggregate_id"`
	At   time.Time    `json:"occurred_at"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewBaseEvent stamps a monotonic ULID so events sort in recording order.
func NewBaseEvent(aggregateID snowflake.ID) BaseEvent {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	entropyMu.Unlock()

	return BaseEvent{
		ID:   id.String(),
		Aggr: aggregateID,
		At:   time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string           { return e.ID }
func (e BaseEvent) AggregateID() snowflake.ID { return e.Aggr }
func (e BaseEvent) OccurredAt() time.Time     { return e.At }
