//go:build wireinject
// +build wireinject

package root

import (
	"github.com/google/wire"

	"github.com/yanqian/healthdash/internal/bootstrap"
	"github.com/yanqian/healthdash/internal/infra/config"
	"github.com/yanqian/healthdash/pkg/logger"
)

func initializeCore() (*bootstrap.Core, error) {
	wire.Build(
		config.Load,
		logger.NewQuiet,
		bootstrap.CoreSet,
		bootstrap.NewCore,
	)
	return nil, nil
}
