package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"chemezy-server/internal/config"
	"chemezy-server/internal/domain/award"
	"chemezy-server/internal/domain/chemical"
	"chemezy-server/internal/domain/reaction"
	"chemezy-server/internal/infrastructure/crontab"
	"chemezy-server/internal/infrastructure/database"
	"chemezy-server/internal/infrastructure/database/repository"
	"chemezy-server/internal/infrastructure/database/transaction"
	"chemezy-server/internal/infrastructure/logger"
	"chemezy-server/internal/infrastructure/pubchem"
	"chemezy-server/internal/infrastructure/reasoning"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvidePredictor exposes the reasoning client as the prediction backend.
// The explicit nil return keeps the interface value nil when the client is
// unconfigured instead of wrapping a typed nil.
func ProvidePredictor(client *reasoning.Client) reaction.Predictor {
	if client == nil {
		return nil
	}
	return client
}

// ProvidePropertiesGenerator exposes the reasoning client as the chemical
// properties generator, with the same nil guard.
func ProvidePropertiesGenerator(client *reasoning.Client) chemical.PropertiesGenerator {
	if client == nil {
		return nil
	}
	return client
}

// ProvideFactRetriever wires the PubChem client as the fact source.
func ProvideFactRetriever(client *pubchem.Client) reaction.FactRetriever {
	return client
}

// ProvideAwardEvaluator wires the in-process award evaluator.
func ProvideAwardEvaluator(log zerolog.Logger) award.Evaluator {
	return award.NewLogEvaluator(log)
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Reasoning backend
	reasoning.NewClient,
	ProvidePredictor,
	ProvidePropertiesGenerator,

	// Fact retrieval
	pubchem.NewClient,
	ProvideFactRetriever,

	// Awards
	ProvideAwardEvaluator,

	// Logger
	logger.GetLogger,

	// Crontab for periodic stats
	crontab.NewCrontab,
)
