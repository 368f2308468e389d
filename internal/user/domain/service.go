package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateUserRequest struct {
	Email      string
	Country    string
	PostalCode string
	Street     string
	Role       string
}

type ListUsersRequest struct {
	Limit  int
	Page   int
	Offset int
}

// UserRow is the persistence-shaped read model used by list queries, which
// bypass aggregate translation on purpose.
type UserRow struct {
	ID         snowflake.ID `json:"id"`
	Email      string       `json:"email"`
	Country    string       `json:"country"`
	PostalCode string       `json:"postal_code"`
	Street     string       `json:"street"`
	Role       Role         `json:"role"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (UserRow) TableName() string { return "users" }

type ListUsersResponse struct {
	Users []UserRow `json:"data"`
	Count int64     `json:"count"`
	Limit int       `json:"limit"`
	Page  int       `json:"page"`
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, req ListUsersRequest) (ListUsersResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID  = errors.New("invalid_id")
	ErrNotFound   = errors.New("not_found")
	ErrEmailTaken = errors.New("email_taken")
)
