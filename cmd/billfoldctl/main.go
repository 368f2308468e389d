package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/config"
	"github.com/billfold/billfold/internal/logger"
	"github.com/billfold/billfold/internal/migration"
	"github.com/billfold/billfold/internal/observability"
	"github.com/billfold/billfold/internal/user"
	userdomain "github.com/billfold/billfold/internal/user/domain"
	"github.com/billfold/billfold/internal/wallet"
	walletdomain "github.com/billfold/billfold/internal/wallet/domain"
	"github.com/billfold/billfold/pkg/db"
	"github.com/billfold/billfold/pkg/eventbus"
)

const usage = `usage: billfoldctl <command> [flags]

commands:
  create-user  -email <email> [-country US] [-postal 00000] [-street HQ] [-role user]
  get-user     -id <id>
  list-users   [-page 1] [-limit 10]
  delete-user  -id <id>
  get-wallet   -user <id>
  credit       -user <id> -amount <n>
  debit        -user <id> -amount <n>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	app := fx.New(
		fx.NopLogger,
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		eventbus.Module,
		user.Module,
		wallet.Module,
		fx.Invoke(func(users userdomain.Service, wallets walletdomain.Service, shutdowner fx.Shutdowner) {
			go func() {
				code := 0
				if err := run(context.Background(), command, args, users, wallets); err != nil {
					fmt.Fprintln(os.Stderr, "billfoldctl:", err)
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
		}),
	)
	app.Run()
}

func run(ctx context.Context, command string, args []string, users userdomain.Service, wallets walletdomain.Service) error {
	switch command {
	case "create-user":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		email := fs.String("email", "", "user email")
		country := fs.String("country", "US", "address country")
		postal := fs.String("postal", "00000", "address postal code")
		street := fs.String("street", "HQ", "address street")
		role := fs.String("role", "user", "user role")
		if err := fs.Parse(args); err != nil {
			return err
		}
		created, err := users.Create(ctx, userdomain.CreateUserRequest{
			Email:      *email,
			Country:    *country,
			PostalCode: *postal,
			Street:     *street,
			Role:       *role,
		})
		if err != nil {
			return err
		}
		return print(created)

	case "get-user":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "user id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		found, err := users.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		return print(found)

	case "list-users":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", 10, "page size")
		if err := fs.Parse(args); err != nil {
			return err
		}
		resp, err := users.List(ctx, userdomain.ListUsersRequest{Page: *page, Limit: *limit})
		if err != nil {
			return err
		}
		return print(resp)

	case "delete-user":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		id := fs.String("id", "", "user id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := users.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Println("deleted", *id)
		return nil

	case "get-wallet":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		userID := fs.String("user", "", "owner user id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		found, err := wallets.GetByUserID(ctx, *userID)
		if err != nil {
			return err
		}
		return print(found)

	case "credit", "debit":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		userID := fs.String("user", "", "owner user id")
		amount := fs.Int64("amount", 0, "amount to apply")
		if err := fs.Parse(args); err != nil {
			return err
		}
		req := walletdomain.AdjustBalanceRequest{UserID: *userID, Amount: *amount}
		var (
			updated *walletdomain.Wallet
			err     error
		)
		if command == "credit" {
			updated, err = wallets.Credit(ctx, req)
		} else {
			updated, err = wallets.Debit(ctx, req)
		}
		if err != nil {
			return err
		}
		return print(updated)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func print(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
