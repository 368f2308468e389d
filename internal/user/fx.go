package user

import (
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/user/repository"
	"github.com/billfold/billfold/internal/user/service"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
