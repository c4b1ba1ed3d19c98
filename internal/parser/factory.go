package parser

import (
	"fmt"

	"beanvault/internal/config"
	"beanvault/internal/port"
)

// ProviderFactory is a function that creates a PriceListParser from a parser config.
type ProviderFactory func(cfg *config.ParserConfig) (port.PriceListParser, error)

// registry of parser provider factories, populated by init() in each provider
// package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a parser provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewParser creates a PriceListParser from a parser config using the registered factory.
func NewParser(cfg *config.ParserConfig) (port.PriceListParser, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
