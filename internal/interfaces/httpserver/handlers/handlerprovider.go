package handlers

import (
	"github.com/google/wire"

	"chemezy-server/internal/interfaces/httpserver/handlers/chemicalhandler"
	"chemezy-server/internal/interfaces/httpserver/handlers/reactionhandler"
)

var HandlerProvider = wire.NewSet(
	reactionhandler.NewReactionHandler,
	chemicalhandler.NewChemicalHandler,
)
