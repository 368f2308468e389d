package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/wallet/domain"
	"github.com/billfold/billfold/pkg/eventbus"
	"github.com/billfold/billfold/pkg/repository"
	"github.com/billfold/billfold/pkg/reqctx"
)

type repo struct {
	*repository.Store[domain.Wallet, *domain.Wallet]
	db *gorm.DB
}

func Provide(db *gorm.DB, bus *eventbus.Bus, log *zap.Logger) domain.Repository {
	return &repo{
		Store: repository.New[domain.Wallet, *domain.Wallet](db, bus, log.Named("wallet.repository")),
		db:    db,
	}
}

func (r *repo) FindOneByUserID(ctx context.Context, userID snowflake.ID) (*domain.Wallet, error) {
	conn := r.db.WithContext(ctx)
	if tx := reqctx.TxFromContext(ctx); tx != nil {
		conn = tx.WithContext(ctx)
	}

	var wallet domain.Wallet
	err := conn.First(&wallet, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}
