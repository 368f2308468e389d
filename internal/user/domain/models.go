package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"

	"github.com/billfold/billfold/pkg/ddd"
)

// Role classifies a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Address is an immutable value object. Build it through NewAddress; changes
// produce a new value instead of mutating in place.
type Address struct {
	Country    string `gorm:"not null" json:"country"`
	PostalCode string `gorm:"not null" json:"postal_code"`
	Street     string `gorm:"not null" json:"street"`
}

func NewAddress(country, postalCode, street string) (Address, error) {
	addr := Address{
		Country:    strings.TrimSpace(country),
		PostalCode: strings.TrimSpace(postalCode),
		Street:     strings.TrimSpace(street),
	}
	if err := addr.validate(); err != nil {
		return Address{}, err
	}
	return addr, nil
}

func (a Address) validate() error {
	if a.Country == "" {
		return ddd.Missing("country")
	}
	if a.PostalCode == "" {
		return ddd.Missing("postal_code")
	}
	if a.Street == "" {
		return ddd.Missing("street")
	}
	return nil
}

// WithStreet returns a copy of the address at a different street.
func (a Address) WithStreet(street string) (Address, error) {
	return NewAddress(a.Country, a.PostalCode, street)
}

func (a Address) Equal(other Address) bool {
	return a == other
}

// User is the aggregate root for the user domain.
type User struct {
	ddd.AggregateRoot `gorm:"-" json:"-"`

	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Email     string            `gorm:"uniqueIndex:idx_users_email;not null" json:"email"`
	Address   Address           `gorm:"embedded" json:"address"`
	Role      Role              `gorm:"not null;default:user" json:"role"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null" json:"updated_at"`
}

// New builds a valid user and records its created event.
func New(id snowflake.ID, email string, address Address, role Role) (*User, error) {
	now := time.Now().UTC()
	u := &User{
		ID:        id,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Address:   address,
		Role:      role,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	u.Record(CreatedEvent{
		BaseEvent: ddd.NewBaseEvent(u.ID),
		Email:     u.Email,
		Role:      u.Role,
	})
	return u, nil
}

func (u *User) AggregateID() snowflake.ID { return u.ID }

// Validate re-checks the whole property bag; every mutation and every write
// path goes through it.
func (u *User) Validate() error {
	if u.ID == 0 {
		return ddd.Missing("id")
	}
	if u.Email == "" {
		return ddd.Missing("email")
	}
	if !strings.Contains(u.Email, "@") {
		return ddd.Invalid("email")
	}
	if !u.Role.Valid() {
		return ddd.Invalid("role")
	}
	return u.Address.validate()
}

// Relocate moves the user to a new address.
func (u *User) Relocate(address Address) error {
	previous := u.Address
	u.Address = address
	if err := u.Validate(); err != nil {
		u.Address = previous
		return err
	}
	u.UpdatedAt = time.Now().UTC()
	u.Record(RelocatedEvent{
		BaseEvent: ddd.NewBaseEvent(u.ID),
		Address:   address,
	})
	return nil
}

// MarkDeleted records the deletion event; the repository performs the
// removal and flushes it.
func (u *User) MarkDeleted() {
	u.Record(DeletedEvent{
		BaseEvent: ddd.NewBaseEvent(u.ID),
		Email:     u.Email,
	})
}
