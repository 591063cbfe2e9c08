package reactionrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chemezy-server/internal/domain/reaction"
	"chemezy-server/internal/infrastructure/database/dbschema"
	"chemezy-server/internal/infrastructure/database/transaction"
	"chemezy-server/internal/utils/platformerrors"
)

type DiscoveryGormRepository struct {
	tx *transaction.Database
}

var _ reaction.DiscoveryRepository = (*DiscoveryGormRepository)(nil)

func NewDiscoveryGormRepository(tx *transaction.Database) reaction.DiscoveryRepository {
	return &DiscoveryGormRepository{tx: tx}
}

// ClaimEffect inserts the discovery row unless the effect key is already
// claimed. The unique index on effect_key plus ON CONFLICT DO NOTHING makes
// the claim first-writer-wins under concurrency; RowsAffected tells the two
// outcomes apart.
func (repo *DiscoveryGormRepository) ClaimEffect(ctx context.Context, discovery *reaction.Discovery) (bool, error) {
	entity := dbschema.NewSchemaDiscovery(discovery)

	result := repo.tx.GetTx(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "effect_key"}},
			DoNothing: true,
		}).
		Create(entity)
	if result.Error != nil {
		return false, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to claim discovery",
			result.Error,
			"d3e8a1c6-9f4b-4d2e-b7a5-0c6f8e2d4b91",
		)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	discovery.ID = entity.ID
	return true, nil
}

func (repo *DiscoveryGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.tx.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Discovery{}).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count discoveries",
			err,
			"7f1b4d8a-2e6c-4a9f-8d3b-5c0e9a7f2d64",
		)
	}
	return count, nil
}

func (repo *DiscoveryGormRepository) DeleteAll(ctx context.Context) error {
	err := repo.tx.GetTx(ctx).WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&dbschema.Discovery{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete discoveries",
			err,
			"a5c9e2f7-4b1d-4f6e-9a8c-3d7b0f5e1c82",
		)
	}
	return nil
}
