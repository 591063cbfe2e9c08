package reactionrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chemezy-server/internal/domain/reaction"
	"chemezy-server/internal/infrastructure/database/dbschema"
	"chemezy-server/internal/infrastructure/database/transaction"
	"chemezy-server/internal/utils/platformerrors"
)

type CacheGormRepository struct {
	tx *transaction.Database
}

var _ reaction.CacheRepository = (*CacheGormRepository)(nil)

func NewCacheGormRepository(tx *transaction.Database) reaction.CacheRepository {
	return &CacheGormRepository{tx: tx}
}

func (repo *CacheGormRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*reaction.CacheEntry, error) {
	var entity dbschema.ReactionCacheEntry
	err := repo.tx.GetTx(ctx).WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find cache entry by fingerprint",
			err,
			"c4f1a2e8-7b3d-4c9e-a1f5-2d8b6e0c4a73",
		)
	}
	return entity.EtoD()
}

func (repo *CacheGormRepository) Create(ctx context.Context, entry *reaction.CacheEntry) error {
	entity, err := dbschema.NewSchemaReactionCacheEntry(entry)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to encode cache entry",
			err,
			"9e2d7b41-5c8a-4f3e-b6d2-1a0c9f8e7d65",
		)
	}

	// ON CONFLICT DO NOTHING instead of a plain insert: a failed INSERT
	// aborts the surrounding Postgres transaction, which would make the
	// caller's winner re-read impossible.
	result := repo.tx.GetTx(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			DoNothing: true,
		}).
		Create(entity)
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create cache entry",
			result.Error,
			"6a9c4e2f-1d7b-4f8a-b3e6-d5c2a8f19e04",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict,
			"cache entry already exists for fingerprint",
			nil,
			"1b6e3d9a-8f2c-4a7b-9e5d-c3a1f0b8d246",
		)
	}

	entry.ID = entity.ID
	entry.CreatedAt = entity.CreatedAt
	return nil
}

func (repo *CacheGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.tx.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.ReactionCacheEntry{}).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count cache entries",
			err,
			"f8d2b5a7-3e1c-49f6-8a4d-7b0e6c2d9a18",
		)
	}
	return count, nil
}

func (repo *CacheGormRepository) DeleteAll(ctx context.Context) error {
	err := repo.tx.GetTx(ctx).WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&dbschema.ReactionCacheEntry{}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to delete cache entries",
			err,
			"2c7a9f4e-6b8d-4e1a-a5c3-9d0f2b6e8c47",
		)
	}
	return nil
}
