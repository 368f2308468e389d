package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/billfold/billfold/internal/config"
	userdomain "github.com/billfold/billfold/internal/user/domain"
	"github.com/billfold/billfold/internal/wallet/domain"
	"github.com/billfold/billfold/pkg/ddd"
	"github.com/billfold/billfold/pkg/eventbus"
)

// Consumer couples the wallet lifecycle to user events. It runs on the
// publisher's context, so when user creation happens inside a transaction
// the wallet write joins it instead of opening a second one.
type Consumer struct {
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	settings *config.SettingsHolder
}

type ConsumerParams struct {
	fx.In

	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Settings *config.SettingsHolder
	Bus      *eventbus.Bus
}

func NewConsumer(p ConsumerParams) *Consumer {
	c := &Consumer{
		log:      p.Log.Named("wallet.consumer"),
		genID:    p.GenID,
		repo:     p.Repo,
		settings: p.Settings,
	}
	p.Bus.Subscribe(userdomain.EventUserCreated, c.OnUserCreated)
	p.Bus.Subscribe(userdomain.EventUserDeleted, c.OnUserDeleted)
	return c
}

// OnUserCreated opens a wallet for the new user.
func (c *Consumer) OnUserCreated(ctx context.Context, e ddd.Event) error {
	created, ok := e.(userdomain.CreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %s", e.EventName())
	}

	opening := c.settings.Current().Wallet.OpeningBalance
	wallet, err := domain.New(c.genID.Generate(), created.AggregateID(), opening)
	if err != nil {
		return err
	}

	return c.repo.Transaction(ctx, func(ctx context.Context) error {
		return c.repo.Insert(ctx, wallet)
	})
}

// OnUserDeleted removes the user's wallet. The store also enforces this via
// the cascading foreign key; doing it here keeps the behavior uniform across
// dialects that ship with foreign keys off.
func (c *Consumer) OnUserDeleted(ctx context.Context, e ddd.Event) error {
	wallet, err := c.repo.FindOneByUserID(ctx, e.AggregateID())
	if err != nil {
		return err
	}
	if wallet == nil {
		return nil
	}

	_, err = c.repo.Delete(ctx, wallet)
	return err
}
