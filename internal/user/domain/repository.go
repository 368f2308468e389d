package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"

	"github.com/billfold/billfold/pkg/db/pagination"
)

type Repository interface {
	FindOneByID(ctx context.Context, id snowflake.ID) *User
	FindAll(ctx context.Context) ([]*User, error)
	FindAllPaginated(ctx context.Context, page pagination.Pagination) (*pagination.Page[User], error)
	Insert(ctx context.Context, users ...*User) error
	Delete(ctx context.Context, user *User) (bool, error)
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
