package chemicalrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"chemezy-server/internal/domain/chemical"
	"chemezy-server/internal/infrastructure/database/dbschema"
	"chemezy-server/internal/infrastructure/database/transaction"
	"chemezy-server/internal/utils/platformerrors"
)

type ChemicalGormRepository struct {
	tx *transaction.Database
}

var _ chemical.Repository = (*ChemicalGormRepository)(nil)

func NewChemicalGormRepository(tx *transaction.Database) chemical.Repository {
	return &ChemicalGormRepository{tx: tx}
}

func (repo *ChemicalGormRepository) FindByID(ctx context.Context, id uint) (*chemical.Chemical, error) {
	var entity dbschema.Chemical
	err := repo.tx.GetTx(ctx).WithContext(ctx).
		Where("id = ?", id).
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
			"failed to find chemical by ID",
			err,
			"e7a2d9c4-6f1b-4e8a-b5d3-8c0f2a6e9d41",
		)
	}
	return entity.EtoD()
}

func (repo *ChemicalGormRepository) FindByFormula(ctx context.Context, formula string) (*chemical.Chemical, error) {
	var entity dbschema.Chemical
	err := repo.tx.GetTx(ctx).WithContext(ctx).
		Where("molecular_formula = ?", formula).
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
			"failed to find chemical by formula",
			err,
			"b1f6c3e9-8a2d-4b7f-9e4c-5d8a0c3f6b27",
		)
	}
	return entity.EtoD()
}

func (repo *ChemicalGormRepository) Create(ctx context.Context, chem *chemical.Chemical) error {
	entity, err := dbschema.NewSchemaChemical(chem)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to encode chemical",
			err,
			"4d8f2a6c-1e9b-4c5d-a7f3-b2e6d0a8c594",
		)
	}

	err = repo.tx.GetTx(ctx).WithContext(ctx).Create(entity).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeConflict,
			"chemical already exists for formula",
			err,
			"8c3e7f1a-5d9b-4a2e-b6c8-f4d0a2e7c913",
		)
	}
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create chemical",
			err,
			"0f5a8d3c-7b2e-4f1a-9c6d-e8b4f2a0d657",
		)
	}

	chem.ID = entity.ID
	chem.CreatedAt = entity.CreatedAt
	chem.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *ChemicalGormRepository) List(ctx context.Context) ([]chemical.Chemical, error) {
	var entities []dbschema.Chemical
	err := repo.tx.GetTx(ctx).WithContext(ctx).
		Order("molecular_formula asc").
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list chemicals",
			err,
			"6b1e9c4f-2d7a-48e3-a9c5-d0f8b3e6a172",
		)
	}

	chemicals := make([]chemical.Chemical, 0, len(entities))
	for i := range entities {
		chem, err := entities[i].EtoD()
		if err != nil {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeInternal,
				"failed to decode chemical",
				err,
				"9e4c7a2d-6f0b-41d8-b3a7-c5e1f8d2a096",
			)
		}
		chemicals = append(chemicals, *chem)
	}
	return chemicals, nil
}

func (repo *ChemicalGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.tx.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Chemical{}).
		Count(&count).
		Error
	if err != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count chemicals",
			err,
			"3a9d6f2b-8e4c-4d7a-b1f5-c6e0a8d2f439",
		)
	}
	return count, nil
}
