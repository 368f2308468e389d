package repository

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/user/domain"
	"github.com/billfold/billfold/pkg/eventbus"
	"github.com/billfold/billfold/pkg/repository"
)

// Provide builds the user repository on the generic transactional store.
func Provide(db *gorm.DB, bus *eventbus.Bus, log *zap.Logger) domain.Repository {
	return repository.New[domain.User, *domain.User](db, bus, log.Named("user.repository"))
}
