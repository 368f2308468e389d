package domain

import (
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"

	"github.com/billfold/billfold/pkg/ddd"
)

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func mustAddress(t *testing.T) Address {
	t.Helper()
	addr, err := NewAddress("FR", "75001", "Rue de Rivoli 1")
	if err != nil {
		t.Fatalf("new address: %v", err)
	}
	return addr
}

func TestNewAddressTrimsAndValidates(t *testing.T) {
	addr, err := NewAddress("  FR ", " 75001 ", " Rue de Rivoli 1 ")
	if err != nil {
		t.Fatalf("new address: %v", err)
	}
	if addr.Country != "FR" || addr.PostalCode != "75001" || addr.Street != "Rue de Rivoli 1" {
		t.Fatalf("address = %+v, want trimmed fields", addr)
	}

	if _, err := NewAddress("", "75001", "Rue"); err == nil {
		t.Fatal("blank country must be rejected")
	}
	var verr *ddd.ValidationError
	_, err = NewAddress("FR", "", "Rue")
	if !errors.As(err, &verr) || verr.Field != "postal_code" {
		t.Fatalf("error = %v, want validation on postal_code", err)
	}
}

func TestAddressValueSemantics(t *testing.T) {
	a := mustAddress(t)
	b := mustAddress(t)
	if !a.Equal(b) {
		t.Fatal("identical addresses must compare equal")
	}

	moved, err := a.WithStreet("Rue de Rivoli 2")
	if err != nil {
		t.Fatalf("with street: %v", err)
	}
	if a.Street != "Rue de Rivoli 1" {
		t.Fatal("WithStreet must not mutate the original value")
	}
	if moved.Equal(a) {
		t.Fatal("copies at different streets must not compare equal")
	}

	if _, err := a.WithStreet("  "); err == nil {
		t.Fatal("blank street must be rejected")
	}
}

func TestNewUserNormalizesAndRecordsEvent(t *testing.T) {
	node := mustNode(t)

	u, err := New(node.Generate(), "  MixedCase@Example.COM ", mustAddress(t), RoleAdmin)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	if u.Email != "mixedcase@example.com" {
		t.Fatalf("email = %q, want lowercase trimmed", u.Email)
	}

	events := u.PullEvents()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	created, ok := events[0].(CreatedEvent)
	if !ok || created.EventName() != EventUserCreated {
		t.Fatalf("event = %T %s, want CreatedEvent %s", events[0], events[0].EventName(), EventUserCreated)
	}
	if created.Email != u.Email || created.AggregateID() != u.ID {
		t.Fatalf("event payload = %+v, want user identity", created)
	}
}

func TestNewUserValidation(t *testing.T) {
	node := mustNode(t)
	addr := mustAddress(t)

	if _, err := New(node.Generate(), "no-at-sign", addr, RoleUser); err == nil {
		t.Fatal("email without @ must be rejected")
	}
	if _, err := New(node.Generate(), "ok@example.com", addr, Role("root")); err == nil {
		t.Fatal("unknown role must be rejected")
	}
	if _, err := New(0, "ok@example.com", addr, RoleUser); err == nil {
		t.Fatal("zero id must be rejected")
	}
}

func TestRelocateRestoresOnInvalidAddress(t *testing.T) {
	node := mustNode(t)
	u, err := New(node.Generate(), "move@example.com", mustAddress(t), RoleUser)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	u.PullEvents()
	original := u.Address

	moved, err := original.WithStreet("Rue de Rivoli 9")
	if err != nil {
		t.Fatalf("with street: %v", err)
	}
	if err := u.Relocate(moved); err != nil {
		t.Fatalf("relocate: %v", err)
	}
	events := u.PullEvents()
	if len(events) != 1 || events[0].EventName() != EventUserRelocated {
		t.Fatalf("events = %v, want one %s", events, EventUserRelocated)
	}

	if err := u.Relocate(Address{}); err == nil {
		t.Fatal("relocating to an empty address must fail")
	}
	if !u.Address.Equal(moved) {
		t.Fatalf("address after failed relocate = %+v, want previous %+v", u.Address, moved)
	}
	if u.PendingEvents() != 0 {
		t.Fatal("failed relocate must record nothing")
	}
}

func TestMarkDeletedRecordsEvent(t *testing.T) {
	node := mustNode(t)
	u, err := New(node.Generate(), "bye@example.com", mustAddress(t), RoleUser)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	u.PullEvents()

	u.MarkDeleted()
	events := u.PullEvents()
	if len(events) != 1 || events[0].EventName() != EventUserDeleted {
		t.Fatalf("events = %v, want one %s", events, EventUserDeleted)
	}
}
