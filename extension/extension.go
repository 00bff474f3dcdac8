// Package extension provides the Forge extension adapter for Billfold.
//
// It implements the forge.Extension interface to integrate Billfold
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.billfold" or
// "billfold" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	billfold "github.com/billfold/billfold"
	"github.com/billfold/billfold/store"
	"github.com/billfold/billfold/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "billfold"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Embeddable small-business invoicing engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Billfold as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *billfold.Engine
	store      store.Store
	engineOpts []billfold.Option
}

// New creates a new Billfold Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Billfold instance.
// This is nil until Register is called.
func (e *Extension) Engine() *billfold.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the billfold engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build engine options from resolved config.
	opts := e.buildEngineOpts()

	eng := billfold.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*billfold.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("billfold: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("billfold: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildEngineOpts constructs billfold.Option values from the resolved config.
func (e *Extension) buildEngineOpts() []billfold.Option {
	opts := make([]billfold.Option, 0, len(e.engineOpts)+2)

	if e.config.DefaultCurrency != "" {
		opts = append(opts, billfold.WithDefaultCurrency(e.config.DefaultCurrency))
	}
	if e.config.NetDays > 0 {
		opts = append(opts, billfold.WithNetDays(e.config.NetDays))
	}

	// Append any pass-through engine options.
	opts = append(opts, e.engineOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("billfold: configuration is required but not found in config files; " +
				"ensure 'extensions.billfold' or 'billfold' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("billfold: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("default_currency", e.config.DefaultCurrency),
		forge.F("net_days", e.config.NetDays),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.billfold" first (namespaced pattern).
	if cm.IsSet("extensions.billfold") {
		if err := cm.Bind("extensions.billfold", &cfg); err == nil {
			e.Logger().Debug("billfold: loaded config from file",
				forge.F("key", "extensions.billfold"),
			)
			return cfg, true
		}
		e.Logger().Warn("billfold: failed to bind extensions.billfold config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "billfold" key.
	if cm.IsSet("billfold") {
		if err := cm.Bind("billfold", &cfg); err == nil {
			e.Logger().Debug("billfold: loaded config from file",
				forge.F("key", "billfold"),
			)
			return cfg, true
		}
		e.Logger().Warn("billfold: failed to bind billfold config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = defaults.DefaultCurrency
	}
	if cfg.NetDays == 0 {
		cfg.NetDays = defaults.NetDays
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic values fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String/int fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.DefaultCurrency == "" && programmaticConfig.DefaultCurrency != "" {
		yamlConfig.DefaultCurrency = programmaticConfig.DefaultCurrency
	}
	if yamlConfig.NetDays == 0 && programmaticConfig.NetDays != 0 {
		yamlConfig.NetDays = programmaticConfig.NetDays
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
