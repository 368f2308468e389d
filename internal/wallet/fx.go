package wallet

import (
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/wallet/repository"
	"github.com/billfold/billfold/internal/wallet/service"
)

var Module = fx.Module("wallet.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(service.NewConsumer),
	fx.Invoke(func(*service.Consumer) {}),
)
