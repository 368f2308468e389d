package domain

import (
	"github.com/bwmarrin/snowflake"

	"github.com/billfold/billfold/pkg/ddd"
)

const (
	EventWalletCreated  = "wallet.created"
	EventWalletCredited = "wallet.credited"
	EventWalletDebited  = "wallet.debited"
)

type CreatedEvent struct {
	ddd.BaseEvent
	UserID  snowflake.ID `json:"user_id"`
	Balance int64        `json:"balance"`
}

func (CreatedEvent) EventName() string { return EventWalletCreated }

type CreditedEvent struct {
	ddd.BaseEvent
	UserID  snowflake.ID `json:"user_id"`
	Amount  int64        `json:"amount"`
	Balance int64        `json:"balance"`
}

func (CreditedEvent) EventName() string { return EventWalletCredited }

type DebitedEvent struct {
	ddd.BaseEvent
	UserID  snowflake.ID `json:"user_id"`
	Amount  int64        `json:"amount"`
	Balance int64        `json:"balance"`
}

func (DebitedEvent) EventName() string { return EventWalletDebited }
