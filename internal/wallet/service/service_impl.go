package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/billfold/billfold/internal/wallet/domain"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		log:   p.Log.Named("wallet.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	parsed, err := s.parseID(userID)
	if err != nil {
		return nil, err
	}

	wallet, err := s.repo.FindOneByUserID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, domain.ErrNotFound
	}
	return wallet, nil
}

func (s *Service) Credit(ctx context.Context, req domain.AdjustBalanceRequest) (*domain.Wallet, error) {
	return s.adjust(ctx, req, (*domain.Wallet).Credit)
}

func (s *Service) Debit(ctx context.Context, req domain.AdjustBalanceRequest) (*domain.Wallet, error) {
	return s.adjust(ctx, req, (*domain.Wallet).Debit)
}

// adjust loads, mutates, and saves the wallet inside one transaction so the
// balance change and its events share an atomic unit.
func (s *Service) adjust(ctx context.Context, req domain.AdjustBalanceRequest, op func(*domain.Wallet, int64) error) (*domain.Wallet, error) {
	parsed, err := s.parseID(req.UserID)
	if err != nil {
		return nil, err
	}

	var wallet *domain.Wallet
	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		var err error
		wallet, err = s.repo.FindOneByUserID(ctx, parsed)
		if err != nil {
			return err
		}
		if wallet == nil {
			return domain.ErrNotFound
		}
		if err := op(wallet, req.Amount); err != nil {
			return err
		}
		return s.repo.Update(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
