package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/smallbiznis/invoicely/internal/currency"
	"github.com/smallbiznis/invoicely/internal/invoice/domain"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Party is a default company or client block.
type Party struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	City    string `mapstructure:"city"`
	Email   string `mapstructure:"email"`
	Phone   string `mapstructure:"phone"`
}

// DefaultItem seeds a new draft's line items.
type DefaultItem struct {
	Description string  `mapstructure:"description"`
	Quantity    float64 `mapstructure:"quantity"`
	Rate        float64 `mapstructure:"rate"`
}

// InvoiceDefaults are the values a fresh draft starts from.
type InvoiceDefaults struct {
	Template       string        `mapstructure:"template"`
	Currency       string        `mapstructure:"currency"`
	TaxRate        float64       `mapstructure:"taxRate"`
	DueInDays      int           `mapstructure:"dueInDays"`
	PaidIndicator  string        `mapstructure:"paidIndicator"`
	NumberTemplate string        `mapstructure:"numberTemplate"`
	Notes          string        `mapstructure:"notes"`
	Terms          string        `mapstructure:"terms"`
	Company        Party         `mapstructure:"company"`
	Client         Party         `mapstructure:"client"`
	Items          []DefaultItem `mapstructure:"items"`
}

func DefaultInvoiceDefaults() InvoiceDefaults {
	return InvoiceDefaults{
		Template:       string(domain.TemplateModern),
		Currency:       currency.DefaultCode,
		TaxRate:        8.5,
		DueInDays:      30,
		PaidIndicator:  string(domain.PaidIndicatorStamp),
		NumberTemplate: "INV-{SEQ3}",
		Notes:          "Thank you for your business!",
		Terms:          "Payment is due within 30 days. Late payments may incur a 5% monthly fee.",
		Company: Party{
			Name:    "Your Company Name",
			Address: "123 Business St, Suite 100",
			City:    "City, State 12345",
			Email:   "hello@yourcompany.com",
			Phone:   "+1 (555) 123-4567",
		},
		Client: Party{
			Name:    "Client Company Name",
			Address: "456 Client Ave",
			City:    "City, State 67890",
			Email:   "client@company.com",
			Phone:   "+1 (555) 987-6543",
		},
		Items: []DefaultItem{
			{Description: "Web Design Services", Quantity: 1, Rate: 2500},
			{Description: "Logo Design", Quantity: 1, Rate: 800},
			{Description: "Brand Guidelines", Quantity: 1, Rate: 500},
		},
	}
}

type DefaultsHolder struct {
	current atomic.Value // holds InvoiceDefaults
}

// NewDefaultsHolder reads invoice defaults from invoicely.yml (or the file
// named by cfg.DefaultsFile) and keeps them current as the file changes.
// A missing file yields the built-in defaults.
func NewDefaultsHolder(cfg Config) (*DefaultsHolder, error) {
	v := viper.New()

	if cfg.DefaultsFile != "" {
		v.SetConfigFile(cfg.DefaultsFile)
	} else {
		v.SetConfigName("invoicely")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/invoicely")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("INVOICELY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &DefaultsHolder{}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultInvoiceDefaults())
		return holder, nil
	}

	current, err := decodeDefaults(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(current)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeDefaults(v)
		if err != nil {
			zap.L().Warn("invoice defaults reload ignored", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(updated)
		zap.L().Info("invoice defaults reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticDefaultsHolder returns a holder that never reloads.
func NewStaticDefaultsHolder(defaults InvoiceDefaults) *DefaultsHolder {
	holder := &DefaultsHolder{}
	holder.current.Store(defaults)
	return holder
}

func (h *DefaultsHolder) Get() InvoiceDefaults {
	return h.current.Load().(InvoiceDefaults)
}

func decodeDefaults(v *viper.Viper) (InvoiceDefaults, error) {
	out := DefaultInvoiceDefaults()
	if v.IsSet("invoice.items") {
		out.Items = nil
	}
	if err := v.UnmarshalKey("invoice", &out); err != nil {
		return InvoiceDefaults{}, err
	}
	if err := validateDefaults(out); err != nil {
		return InvoiceDefaults{}, err
	}
	return out, nil
}

func validateDefaults(d InvoiceDefaults) error {
	if _, err := domain.ParseTemplate(d.Template); err != nil {
		return errors.New("invoice.template must be one of modern, classic, minimal, bold, elegant")
	}
	if _, err := domain.ParsePaidIndicator(d.PaidIndicator); err != nil {
		return errors.New("invoice.paidIndicator must be stamp or text")
	}
	if !currency.Known(d.Currency) {
		return errors.New("invoice.currency is not a supported currency")
	}
	if d.TaxRate < 0 {
		return errors.New("invoice.taxRate cannot be negative")
	}
	if d.DueInDays < 0 {
		return errors.New("invoice.dueInDays cannot be negative")
	}
	if strings.TrimSpace(d.NumberTemplate) == "" {
		return errors.New("invoice.numberTemplate cannot be empty")
	}
	return nil
}
