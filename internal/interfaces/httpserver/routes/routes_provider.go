package routes

import (
	"github.com/google/wire"

	"chemezy-server/internal/interfaces/httpserver/handlers"
	v1 "chemezy-server/internal/interfaces/httpserver/routes/v1"
	"chemezy-server/internal/interfaces/httpserver/routes/v1/chemicalroute"
	"chemezy-server/internal/interfaces/httpserver/routes/v1/debugroute"
	"chemezy-server/internal/interfaces/httpserver/routes/v1/reactionroute"
)

var RouteProvider = wire.NewSet(
	// Handlers
	handlers.HandlerProvider,

	// Routes
	v1.NewV1Route,
	reactionroute.NewReactionRoute,
	chemicalroute.NewChemicalRoute,
	debugroute.NewDebugRoute,
)
