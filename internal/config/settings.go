package config

import (
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/billfold/billfold/pkg/ddd"
)

// Settings are the runtime-tunable knobs, loaded from billfold.yml and
// hot-reloaded on file change. Env vars with the BILLFOLD_ prefix override.
type Settings struct {
	Pagination PaginationSettings `mapstructure:"pagination"`
	Wallet     WalletSettings     `mapstructure:"wallet"`
}

type PaginationSettings struct {
	DefaultLimit int `mapstructure:"defaultLimit"`
	MaxLimit     int `mapstructure:"maxLimit"`
}

type WalletSettings struct {
	OpeningBalance int64 `mapstructure:"openingBalance"`
}

func DefaultSettings() Settings {
	return Settings{
		Pagination: PaginationSettings{DefaultLimit: 10, MaxLimit: 250},
		Wallet:     WalletSettings{OpeningBalance: 0},
	}
}

// SettingsHolder hands out the current settings without locking readers.
type SettingsHolder struct {
	current atomic.Value // holds Settings
}

func (h *SettingsHolder) Current() Settings {
	return h.current.Load().(Settings)
}

// NewSettingsHolder reads billfold.yml, falls back to defaults when the file
// is absent, and keeps watching it for changes.
func NewSettingsHolder() (*SettingsHolder, error) {
	v := viper.New()

	v.SetConfigName("billfold")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/billfold")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLFOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	watch := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		watch = false
		defaults := DefaultSettings()
		v.SetDefault("pagination.defaultLimit", defaults.Pagination.DefaultLimit)
		v.SetDefault("pagination.maxLimit", defaults.Pagination.MaxLimit)
		v.SetDefault("wallet.openingBalance", defaults.Wallet.OpeningBalance)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	holder := &SettingsHolder{}
	holder.current.Store(settings)

	if watch {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated Settings
			if err := v.Unmarshal(&updated); err != nil {
				log.Printf("[settings] reload failed: %v", err)
				return
			}
			if err := validateSettings(updated); err != nil {
				log.Printf("[settings] invalid settings ignored: %v", err)
				return
			}
			holder.current.Store(updated)
		})
	}

	return holder, nil
}

// StaticSettingsHolder pins the holder to one settings value with no file
// watching behind it.
func StaticSettingsHolder(s Settings) *SettingsHolder {
	holder := &SettingsHolder{}
	holder.current.Store(s)
	return holder
}

func validateSettings(s Settings) error {
	if s.Pagination.DefaultLimit <= 0 {
		return ddd.Invalid("pagination.defaultLimit")
	}
	if s.Pagination.MaxLimit < s.Pagination.DefaultLimit {
		return ddd.Invalid("pagination.maxLimit")
	}
	if s.Wallet.OpeningBalance < 0 {
		return ddd.Invalid("wallet.openingBalance")
	}
	return nil
}
