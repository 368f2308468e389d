package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/user/domain"
	"github.com/billfold/billfold/pkg/db"
	"github.com/billfold/billfold/pkg/db/pagination"
	"github.com/billfold/billfold/pkg/reqctx"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Settings *config.SettingsHolder
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	settings *config.SettingsHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("user.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		settings: p.Settings,
	}
}

// Create builds the aggregate and inserts it inside one transaction, so the
// wallet created by the user.created subscriber commits atomically with the
// user row.
func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	address, err := domain.NewAddress(req.Country, req.PostalCode, req.Street)
	if err != nil {
		return nil, err
	}

	role := domain.Role(strings.TrimSpace(req.Role))
	if role == "" {
		role = domain.RoleUser
	}

	user, err := domain.New(s.genID.Generate(), req.Email, address, role)
	if err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		return s.repo.Insert(ctx, user)
	})
	if err != nil {
		var conflict *db.ConflictError
		if errors.As(err, &conflict) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	parsed, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	user := s.repo.FindOneByID(ctx, parsed)
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// List reads persistence-shaped rows directly, skipping aggregate
// translation and event machinery.
func (s *Service) List(ctx context.Context, req domain.ListUsersRequest) (domain.ListUsersResponse, error) {
	settings := s.settings.Current()

	page := pagination.Pagination{
		Offset: req.Offset,
		Limit:  req.Limit,
		Page:   req.Page,
	}
	if page.Limit <= 0 {
		page.Limit = settings.Pagination.DefaultLimit
	}
	page = page.Normalize(settings.Pagination.MaxLimit)

	conn := s.db.WithContext(ctx)
	if tx := reqctx.TxFromContext(ctx); tx != nil {
		conn = tx.WithContext(ctx)
	}

	var count int64
	if err := conn.Model(&domain.UserRow{}).Count(&count).Error; err != nil {
		return domain.ListUsersResponse{}, err
	}

	var rows []domain.UserRow
	if err := conn.Model(&domain.UserRow{}).
		Order("id").
		Offset(page.Skip()).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return domain.ListUsersResponse{}, err
	}

	return domain.ListUsersResponse{
		Users: rows,
		Count: count,
		Limit: page.Limit,
		Page:  page.Page,
	}, nil
}

// Delete removes the user inside one transaction; the user.deleted
// subscriber drops the wallet in the same atomic unit.
func (s *Service) Delete(ctx context.Context, id string) error {
	parsed, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.repo.Transaction(ctx, func(ctx context.Context) error {
		user := s.repo.FindOneByID(ctx, parsed)
		if user == nil {
			return domain.ErrNotFound
		}

		user.MarkDeleted()
		removed, err := s.repo.Delete(ctx, user)
		if err != nil {
			return err
		}
		if !removed {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
