package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/user/domain"
	userrepository "github.com/billfold/billfold/internal/user/repository"
	walletdomain "github.com/billfold/billfold/internal/wallet/domain"
	walletrepository "github.com/billfold/billfold/internal/wallet/repository"
	walletservice "github.com/billfold/billfold/internal/wallet/service"
	"github.com/billfold/billfold/pkg/eventbus"
)

type fixture struct {
	users    domain.Service
	wallets  walletdomain.Repository
	db       *gorm.DB
	settings *config.SettingsHolder
}

func setupFixture(t *testing.T, settings config.Settings) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := conn.AutoMigrate(&domain.User{}, &walletdomain.Wallet{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	log := zap.NewNop()
	bus := eventbus.New(log)
	holder := config.StaticSettingsHolder(settings)

	userRepo := userrepository.Provide(conn, bus, log)
	walletRepo := walletrepository.Provide(conn, bus, log)

	walletservice.NewConsumer(walletservice.ConsumerParams{
		Log:      log,
		GenID:    node,
		Repo:     walletRepo,
		Settings: holder,
		Bus:      bus,
	})

	users := New(Params{
		DB:       conn,
		Log:      log,
		GenID:    node,
		Repo:     userRepo,
		Settings: holder,
	})

	return &fixture{users: users, wallets: walletRepo, db: conn, settings: holder}
}

func defaultCreateRequest(email string) domain.CreateUserRequest {
	return domain.CreateUserRequest{
		Email:      email,
		Country:    "NL",
		PostalCode: "1011AB",
		Street:     "Dam 1",
		Role:       "user",
	}
}

func TestCreateUserOpensWallet(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Wallet.OpeningBalance = 250
	f := setupFixture(t, settings)
	ctx := context.Background()

	user, err := f.users.Create(ctx, defaultCreateRequest("Alice@Example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("role = %q, want user", user.Role)
	}

	wallet, err := f.wallets.FindOneByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find wallet: %v", err)
	}
	if wallet == nil {
		t.Fatal("creating a user must open a wallet")
	}
	if wallet.Balance != 250 {
		t.Fatalf("opening balance = %d, want 250", wallet.Balance)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := setupFixture(t, config.DefaultSettings())
	ctx := context.Background()

	if _, err := f.users.Create(ctx, defaultCreateRequest("dup@example.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := f.users.Create(ctx, defaultCreateRequest("dup@example.com"))
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("second create error = %v, want ErrEmailTaken", err)
	}

	var users, wallets int64
	if err := f.db.Model(&domain.User{}).Count(&users).Error; err != nil {
		t.Fatal(err)
	}
	if err := f.db.Model(&walletdomain.Wallet{}).Count(&wallets).Error; err != nil {
		t.Fatal(err)
	}
	if users != 1 || wallets != 1 {
		t.Fatalf("rows after conflict = %d users %d wallets, want 1 and 1", users, wallets)
	}
}

func TestCreateUserValidation(t *testing.T) {
	f := setupFixture(t, config.DefaultSettings())
	ctx := context.Background()

	req := defaultCreateRequest("bad-role@example.com")
	req.Role = "superuser"
	if _, err := f.users.Create(ctx, req); err == nil {
		t.Fatal("unknown role must be rejected")
	}

	req = defaultCreateRequest("no-country@example.com")
	req.Country = "  "
	if _, err := f.users.Create(ctx, req); err == nil {
		t.Fatal("blank country must be rejected")
	}

	req = defaultCreateRequest("")
	if _, err := f.users.Create(ctx, req); err == nil {
		t.Fatal("blank email must be rejected")
	}
}

func TestGetByID(t *testing.T) {
	f := setupFixture(t, config.DefaultSettings())
	ctx := context.Background()

	created, err := f.users.Create(ctx, defaultCreateRequest("get@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := f.users.GetByID(ctx, created.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("id = %s, want %s", found.ID, created.ID)
	}

	if _, err := f.users.GetByID(ctx, "not-a-snowflake"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("invalid id error = %v, want ErrInvalidID", err)
	}
	if _, err := f.users.GetByID(ctx, "123456789012345678"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing id error = %v, want ErrNotFound", err)
	}
}

func TestListUsersPaginates(t *testing.T) {
	f := setupFixture(t, config.DefaultSettings())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := f.users.Create(ctx, defaultCreateRequest(fmt.Sprintf("user%d@example.com", i))); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	resp, err := f.users.List(ctx, domain.ListUsersRequest{Limit: 2, Page: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("page rows = %d, want 2", len(resp.Users))
	}
	if resp.Count != 5 {
		t.Fatalf("count = %d, want 5", resp.Count)
	}

	// Rows come back ordered by id; page 2 starts where page 1 ended.
	next, err := f.users.List(ctx, domain.ListUsersRequest{Limit: 2, Page: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(next.Users) != 2 || next.Users[0].ID <= resp.Users[1].ID {
		t.Fatalf("page 2 must continue after page 1: %v then %v", resp.Users, next.Users)
	}
}

func TestListUsersUsesSettingsDefaults(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Pagination.DefaultLimit = 3
	f := setupFixture(t, settings)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := f.users.Create(ctx, defaultCreateRequest(fmt.Sprintf("cap%d@example.com", i))); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	resp, err := f.users.List(ctx, domain.ListUsersRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Users) != 3 || resp.Limit != 3 {
		t.Fatalf("default page = %d rows limit %d, want 3 and 3", len(resp.Users), resp.Limit)
	}
}

func TestDeleteUserClosesWallet(t *testing.T) {
	f := setupFixture(t, config.DefaultSettings())
	ctx := context.Background()

	created, err := f.users.Create(ctx, defaultCreateRequest("leaver@example.com"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.users.Delete(ctx, created.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.users.GetByID(ctx, created.ID.String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get after delete = %v, want ErrNotFound", err)
	}

	wallet, err := f.wallets.FindOneByUserID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find wallet: %v", err)
	}
	if wallet != nil {
		t.Fatal("deleting a user must remove the wallet")
	}

	if err := f.users.Delete(ctx, created.ID.String()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("repeat delete = %v, want ErrNotFound", err)
	}
}
