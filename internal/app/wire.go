//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"netmonitor/internal/config"
)

// InitializeApp loads the configuration and assembles the application.
func InitializeApp() (*App, error) {
	panic(wire.Build(
		provideConfig,
		ProviderSet,
	))
}

// InitializeAppWithConfig assembles the application from cfg.
func InitializeAppWithConfig(cfg *config.Config) (*App, error) {
	panic(wire.Build(ProviderSet))
}
