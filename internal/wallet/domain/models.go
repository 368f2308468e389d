package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/billfold/billfold/pkg/ddd"
)

// Wallet is the aggregate root holding one user's balance, in minor units.
// The balance never goes negative.
type Wallet struct {
	ddd.AggregateRoot `gorm:"-" json:"-"`

	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"uniqueIndex:idx_wallets_user_id;not null" json:"user_id"`
	Balance   int64        `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// New builds a valid wallet and records its created event.
func New(id, userID snowflake.ID, openingBalance int64) (*Wallet, error) {
	now := time.Now().UTC()
	w := &Wallet{
		ID:        id,
		UserID:    userID,
		Balance:   openingBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	w.Record(CreatedEvent{
		BaseEvent: ddd.NewBaseEvent(w.ID),
		UserID:    w.UserID,
		Balance:   w.Balance,
	})
	return w, nil
}

func (w *Wallet) AggregateID() snowflake.ID { return w.ID }

func (w *Wallet) Validate() error {
	if w.ID == 0 {
		return ddd.Missing("id")
	}
	if w.UserID == 0 {
		return ddd.Missing("user_id")
	}
	if w.Balance < 0 {
		return ddd.Invalid("balance")
	}
	return nil
}

// Credit adds funds to the wallet.
func (w *Wallet) Credit(amount int64) error {
	if amount <= 0 {
		return ddd.Invalid("amount")
	}
	w.Balance += amount
	w.UpdatedAt = time.Now().UTC()
	w.Record(CreditedEvent{
		BaseEvent: ddd.NewBaseEvent(w.ID),
		UserID:    w.UserID,
		Amount:    amount,
		Balance:   w.Balance,
	})
	return nil
}

// Debit withdraws funds; it fails when the balance would go negative.
func (w *Wallet) Debit(amount int64) error {
	if amount <= 0 {
		return ddd.Invalid("amount")
	}
	if w.Balance < amount {
		return ErrInsufficientFunds
	}
	w.Balance -= amount
	w.UpdatedAt = time.Now().UTC()
	w.Record(DebitedEvent{
		BaseEvent: ddd.NewBaseEvent(w.ID),
		UserID:    w.UserID,
		Amount:    amount,
		Balance:   w.Balance,
	})
	return nil
}
