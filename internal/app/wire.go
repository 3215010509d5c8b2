//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"voxi/internal/config"
)

// InitializeApp wires the full application container from environment
// configuration. Regenerate wire_gen.go with `wire ./internal/app` after
// changing the provider set.
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(
		provideLogger,
		providePromRegistry,
		provideMetrics,
		provideGatherer,
		provideEnginesConfig,
		provideRegistry,
		providePipeline,
		provideDAO,
		provideCache,
		provideArchiver,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
