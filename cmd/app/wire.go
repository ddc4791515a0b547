//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/healthdash/internal/bootstrap"
	"github.com/yanqian/healthdash/internal/infra/config"
	httpiface "github.com/yanqian/healthdash/internal/interface/http"
	"github.com/yanqian/healthdash/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		bootstrap.CoreSet,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
