package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindOneByID(ctx context.Context, id snowflake.ID) *Wallet
	FindOneByUserID(ctx context.Context, userID snowflake.ID) (*Wallet, error)
	Insert(ctx context.Context, wallets ...*Wallet) error
	Update(ctx context.Context, wallet *Wallet) error
	Delete(ctx context.Context, wallet *Wallet) (bool, error)
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
