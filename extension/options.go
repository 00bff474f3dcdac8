package extension

import (
	billfold "github.com/billfold/billfold"
	"github.com/billfold/billfold/plugin"
	"github.com/billfold/billfold/store"
)

// Option configures the Billfold Forge extension.
type Option func(*Extension)

// WithStore sets the store for the billfold engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithEngineOption passes a billfold.Option through to the underlying engine.
func WithEngineOption(opt billfold.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithPlugin registers a billfold plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, billfold.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithDefaultCurrency sets the currency stamped on new invoices.
func WithDefaultCurrency(code string) Option {
	return func(e *Extension) { e.config.DefaultCurrency = code }
}

// WithNetDays sets the payment term for auto-assigned due dates.
func WithNetDays(days int) Option {
	return func(e *Extension) { e.config.NetDays = days }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
