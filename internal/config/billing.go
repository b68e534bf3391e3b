package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BillingConfig carries the billing policy knobs the invoice and report
// engines read at computation time. The seller block feeds the compliance
// QR payload; the time zone pins civil-date bucketing so repeated runs
// produce identical output regardless of the host zone.
type BillingConfig struct {
	Seller SellerConfig `mapstructure:"seller"`

	// VATRatePercent is applied to every synthesized and manual line.
	VATRatePercent float64 `mapstructure:"vatRatePercent"`

	// OvertimeBillingFactor is the fixed client-billing overtime factor.
	// Payroll reporting keeps using each timesheet's stored multiplier;
	// the two paths are deliberately separate.
	OvertimeBillingFactor float64 `mapstructure:"overtimeBillingFactor"`

	Timezone string `mapstructure:"timezone"`
}

type SellerConfig struct {
	Name      string `mapstructure:"name"`
	VATNumber string `mapstructure:"vatNumber"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		Seller: SellerConfig{
			Name:      "Crewbill Contracting",
			VATNumber: "300000000000003",
		},
		VATRatePercent:        15,
		OvertimeBillingFactor: 1.5,
		Timezone:              "Asia/Riyadh",
	}
}

// Location resolves the configured business time zone, falling back to UTC.
func (c BillingConfig) Location() *time.Location {
	loc, err := time.LoadLocation(strings.TrimSpace(c.Timezone))
	if err != nil || loc == nil {
		return time.UTC
	}
	return loc
}

type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

func NewBillingConfigHolder() (*BillingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/crewbill/config") // Volume-mounted config
	v.AddConfigPath("/etc/crewbill")            // System config
	v.AddConfigPath(".")                        // Current directory (dev mode)

	v.SetEnvPrefix("CREWBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultBillingConfig()
	v.SetDefault("billing.seller.name", defaults.Seller.Name)
	v.SetDefault("billing.seller.vatNumber", defaults.Seller.VATNumber)
	v.SetDefault("billing.vatRatePercent", defaults.VATRatePercent)
	v.SetDefault("billing.overtimeBillingFactor", defaults.OvertimeBillingFactor)
	v.SetDefault("billing.timezone", defaults.Timezone)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg BillingConfig
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated BillingConfig
		if err := v.UnmarshalKey("billing", &updated); err != nil {
			log.Printf("[billing-config] reload failed: %v", err)
			return
		}
		if err := validateBillingConfig(updated); err != nil {
			log.Printf("[billing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[billing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticBillingConfigHolder wraps a fixed config, used by tests.
func NewStaticBillingConfigHolder(cfg BillingConfig) *BillingConfigHolder {
	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *BillingConfigHolder) Get() BillingConfig {
	return h.current.Load().(BillingConfig)
}

func validateBillingConfig(cfg BillingConfig) error {
	if strings.TrimSpace(cfg.Seller.Name) == "" {
		return errors.New("billing.seller.name cannot be empty")
	}
	if strings.TrimSpace(cfg.Seller.VATNumber) == "" {
		return errors.New("billing.seller.vatNumber cannot be empty")
	}
	if cfg.VATRatePercent < 0 || cfg.VATRatePercent > 100 {
		return errors.New("billing.vatRatePercent must be within [0,100]")
	}
	if cfg.OvertimeBillingFactor < 1 || cfg.OvertimeBillingFactor > 5 {
		return errors.New("billing.overtimeBillingFactor must be within [1,5]")
	}
	return nil
}
