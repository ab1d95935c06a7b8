package fx

import (
	"cricket-scorer/internal/api"
	"cricket-scorer/internal/config"
	"cricket-scorer/internal/database"
	"cricket-scorer/internal/logger"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/server"
	"cricket-scorer/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewMatchRepository),
	// result webhook
	fx.Provide(api.NewResultPublisher),
	// svc
	fx.Provide(service.NewLiveFeed),
	fx.Provide(service.NewMatchService),
	// server
	fx.Provide(server.NewScoringServer),
	fx.Provide(server.NewRouter),
)
