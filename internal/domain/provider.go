package domain

import (
	"github.com/google/wire"

	"chemezy-server/internal/domain/chemical"
	"chemezy-server/internal/domain/reaction"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Chemical catalog
	chemical.NewService,

	// Reaction prediction engine
	reaction.NewService,
)
