package main

import (
	"context"
	"log/slog"

	"healthmate/config"
	"healthmate/internal/delivery/bridge"
	"healthmate/internal/delivery/bridge/handler"
	"healthmate/internal/delivery/middleware"
	"healthmate/internal/infra/api"
	logs "healthmate/internal/infra/log"
	"healthmate/internal/infra/persistence/cookiestore"
	"healthmate/internal/usecase/impl"

	"go.uber.org/fx"
)

type startBridgeParams struct {
	fx.In
	fx.Lifecycle

	Server *bridge.Server
	Logger *slog.Logger
}

func main() {
	fx.New(
		injectInfra(),
		injectUsecase(),
		injectDelivery(),
		fx.Invoke(
			startBridge,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		cookiestore.New,
		api.NewGateway,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAuthService,
		impl.NewOAuthService,
		impl.NewPortalService,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		middleware.NewRequestIDMiddleware,
		handler.NewAuthHandler,
		handler.NewPortalHandler,
		bridge.NewOAuthHandler,
		bridge.NewServer,
	)
}

func startBridge(params startBridgeParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := params.Server.Serve(context.Background()); err != nil {
					params.Logger.Error("Bridge server stopped", slog.Any("error", err))
				}
			}()

			return nil
		},
	})
}
