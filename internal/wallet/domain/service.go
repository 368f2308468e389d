package domain

import (
	"context"
	"errors"
)

type AdjustBalanceRequest struct {
	UserID string
	Amount int64
}

type Service interface {
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	Credit(ctx context.Context, req AdjustBalanceRequest) (*Wallet, error)
	Debit(ctx context.Context, req AdjustBalanceRequest) (*Wallet, error)
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrNotFound          = errors.New("not_found")
	ErrInsufficientFunds = errors.New("insufficient_funds")
)
