package domain

import (
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
)

func newTestWallet(t *testing.T, balance int64) *Wallet {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}
	w, err := New(node.Generate(), node.Generate(), balance)
	if err != nil {
		t.Fatalf("new wallet: %v", err)
	}
	w.PullEvents()
	return w
}

func TestNewWallet(t *testing.T) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	w, err := New(node.Generate(), node.Generate(), 50)
	if err != nil {
		t.Fatalf("new wallet: %v", err)
	}
	events := w.PullEvents()
	if len(events) != 1 || events[0].EventName() != EventWalletCreated {
		t.Fatalf("events = %v, want one %s", events, EventWalletCreated)
	}

	if _, err := New(node.Generate(), node.Generate(), -1); err == nil {
		t.Fatal("negative opening balance must be rejected")
	}
	if _, err := New(node.Generate(), 0, 10); err == nil {
		t.Fatal("missing owner must be rejected")
	}
}

func TestCreditAndDebit(t *testing.T) {
	w := newTestWallet(t, 100)

	if err := w.Credit(25); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if w.Balance != 125 {
		t.Fatalf("balance = %d, want 125", w.Balance)
	}

	if err := w.Debit(125); err != nil {
		t.Fatalf("debit: %v", err)
	}
	if w.Balance != 0 {
		t.Fatalf("balance = %d, want 0", w.Balance)
	}

	events := w.PullEvents()
	if len(events) != 2 ||
		events[0].EventName() != EventWalletCredited ||
		events[1].EventName() != EventWalletDebited {
		t.Fatalf("events = %v, want credited then debited", events)
	}
}

func TestDebitNeverOverdraws(t *testing.T) {
	w := newTestWallet(t, 10)

	if err := w.Debit(11); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("debit error = %v, want ErrInsufficientFunds", err)
	}
	if w.Balance != 10 {
		t.Fatalf("balance after refused debit = %d, want 10", w.Balance)
	}
	if w.PendingEvents() != 0 {
		t.Fatal("refused debit must record nothing")
	}
}

func TestAdjustmentsRejectNonPositiveAmounts(t *testing.T) {
	w := newTestWallet(t, 10)

	if err := w.Credit(0); err == nil {
		t.Fatal("zero credit must be rejected")
	}
	if err := w.Debit(-1); err == nil {
		t.Fatal("negative debit must be rejected")
	}
}
