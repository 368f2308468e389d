package config

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Pagination.DefaultLimit != 10 || s.Pagination.MaxLimit != 250 {
		t.Fatalf("pagination defaults = %+v", s.Pagination)
	}
	if s.Wallet.OpeningBalance != 0 {
		t.Fatalf("opening balance default = %d, want 0", s.Wallet.OpeningBalance)
	}
	if err := validateSettings(s); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateSettings(t *testing.T) {
	s := DefaultSettings()
	s.Pagination.DefaultLimit = 0
	if err := validateSettings(s); err == nil {
		t.Fatal("zero default limit must be rejected")
	}

	s = DefaultSettings()
	s.Pagination.MaxLimit = s.Pagination.DefaultLimit - 1
	if err := validateSettings(s); err == nil {
		t.Fatal("max below default must be rejected")
	}

	s = DefaultSettings()
	s.Wallet.OpeningBalance = -1
	if err := validateSettings(s); err == nil {
		t.Fatal("negative opening balance must be rejected")
	}
}

func TestStaticSettingsHolder(t *testing.T) {
	want := DefaultSettings()
	want.Wallet.OpeningBalance = 500

	holder := StaticSettingsHolder(want)
	if got := holder.Current(); got != want {
		t.Fatalf("current = %+v, want %+v", got, want)
	}
}
