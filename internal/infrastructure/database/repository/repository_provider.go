package repository

import (
	"chemezy-server/internal/infrastructure/database/repository/chemicalrepo"
	"chemezy-server/internal/infrastructure/database/repository/reactionrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	reactionrepo.NewCacheGormRepository,
	reactionrepo.NewDiscoveryGormRepository,
	chemicalrepo.NewChemicalGormRepository,
)
