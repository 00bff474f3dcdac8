package extension

// Config holds the Billfold extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.billfold" or "billfold" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// DefaultCurrency is the ISO 4217 code stamped on new invoices that do
	// not specify one (default: "usd").
	DefaultCurrency string `json:"default_currency" mapstructure:"default_currency" yaml:"default_currency"`

	// NetDays is the payment term for auto-assigned due dates on new
	// drafts (default: 30).
	NetDays int `json:"net_days" mapstructure:"net_days" yaml:"net_days"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultCurrency: "usd",
		NetDays:         30,
	}
}
