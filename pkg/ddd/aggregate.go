package ddd

import "github.com/bwmarrin/snowflake"

// Aggregate is the persistence-facing contract every aggregate root satisfies.
// The repository validates before any write and drains the event buffer after
// a successful one; application code never pulls events itself.
type Aggregate interface {
	AggregateID() snowflake.ID
	Validate() error
	Record(Event)
	PullEvents() []Event
}

// AggregateRoot is the embeddable event buffer shared by all aggregates.
// The buffer is invisible to the outside until PullEvents drains it.
type AggregateRoot struct {
	events []Event
}

// Record appends a domain event to the aggregate's private buffer.
func (a *AggregateRoot) Record(e Event) {
	a.events = append(a.events, e)
}

// PullEvents drains the buffer and returns the events in recording order.
func (a *AggregateRoot) PullEvents() []Event {
	events := a.events
	a.events = nil
	return events
}

// PendingEvents returns the buffered events without draining them.
func (a *AggregateRoot) PendingEvents() int {
	return len(a.events)
}
