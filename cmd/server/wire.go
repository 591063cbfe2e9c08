//go:build wireinject

package main

import (
	"chemezy-server/internal/domain"
	"chemezy-server/internal/infrastructure"
	"chemezy-server/internal/interfaces"
	"chemezy-server/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func CreateDataInitializer() (*DataInitializer, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		wire.Struct(new(DataInitializer), "*"),
	)
	return nil, nil
}
