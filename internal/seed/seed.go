package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	userdomain "github.com/billfold/billfold/internal/user/domain"
	walletdomain "github.com/billfold/billfold/internal/wallet/domain"
)

const (
	defaultAdminCountry    = "US"
	defaultAdminPostalCode = "00000"
	defaultAdminStreet     = "HQ"
)

// EnsureBootstrapAdmin seeds an admin user (and its wallet) so a fresh
// install has an account to operate with. Idempotent across restarts.
func EnsureBootstrapAdmin(db *gorm.DB, email string) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.New("seed admin email is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin, err := ensureAdminTx(ctx, tx, node, email)
		if err != nil {
			return err
		}
		return ensureWalletTx(ctx, tx, node, admin.ID)
	})
}

func ensureAdminTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, email string) (*userdomain.User, error) {
	var existing userdomain.User
	err := tx.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	address, err := userdomain.NewAddress(defaultAdminCountry, defaultAdminPostalCode, defaultAdminStreet)
	if err != nil {
		return nil, err
	}
	admin, err := userdomain.New(node.Generate(), email, address, userdomain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	admin.PullEvents() // seeded directly, no consumers to notify

	if err := tx.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

func ensureWalletTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, userID snowflake.ID) error {
	var existing walletdomain.Wallet
	err := tx.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	wallet, err := walletdomain.New(node.Generate(), userID, 0)
	if err != nil {
		return err
	}
	wallet.PullEvents()

	return tx.WithContext(ctx).Create(wallet).Error
}
