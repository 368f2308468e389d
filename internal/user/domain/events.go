package domain

import "github.com/billfold/billfold/pkg/ddd"

const (
	EventUserCreated   = "user.created"
	EventUserRelocated = "user.relocated"
	EventUserDeleted   = "user.deleted"
)

// CreatedEvent announces a new user account.
type CreatedEvent struct {
	ddd.BaseEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (CreatedEvent) EventName() string { return EventUserCreated }

// RelocatedEvent announces an address change.
type RelocatedEvent struct {
	ddd.BaseEvent
	Address Address `json:"address"`
}

func (RelocatedEvent) EventName() string { return EventUserRelocated }

// DeletedEvent announces the removal of a user account.
type DeletedEvent struct {
	ddd.BaseEvent
	Email string `json:"email"`
}

func (DeletedEvent) EventName() string { return EventUserDeleted }
