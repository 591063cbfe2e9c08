package interfaces

import (
	"chemezy-server/internal/interfaces/httpserver"

	"github.com/google/wire"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
