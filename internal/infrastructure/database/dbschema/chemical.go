package dbschema

import (
	"encoding/json"

	"gorm.io/datatypes"

	"chemezy-server/internal/domain/chemical"
	"chemezy-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Chemical{})
}

type Chemical struct {
	BaseModel
	MolecularFormula string         `gorm:"type:varchar(255);not null;uniqueIndex:ux_chemicals_molecular_formula"`
	CommonName       string         `gorm:"type:varchar(255);not null"`
	StateOfMatter    string         `gorm:"type:varchar(50);not null"`
	Color            string         `gorm:"type:varchar(100);not null"`
	Density          float64        `gorm:"not null"`
	Properties       datatypes.JSON `gorm:"type:jsonb"`
}

func (Chemical) TableName() string {
	return "chemicals"
}

func NewSchemaChemical(c *chemical.Chemical) (*Chemical, error) {
	if c == nil {
		return nil, nil
	}

	var properties datatypes.JSON
	if len(c.Properties) > 0 {
		data, err := json.Marshal(c.Properties)
		if err != nil {
			return nil, err
		}
		properties = datatypes.JSON(data)
	}

	return &Chemical{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		MolecularFormula: c.MolecularFormula,
		CommonName:       c.CommonName,
		StateOfMatter:    c.StateOfMatter,
		Color:            c.Color,
		Density:          c.Density,
		Properties:       properties,
	}, nil
}

func (c *Chemical) EtoD() (*chemical.Chemical, error) {
	if c == nil {
		return nil, nil
	}

	var properties map[string]any
	if len(c.Properties) > 0 {
		if err := json.Unmarshal(c.Properties, &properties); err != nil {
			return nil, err
		}
	}

	return &chemical.Chemical{
		ID:               c.ID,
		MolecularFormula: c.MolecularFormula,
		CommonName:       c.CommonName,
		StateOfMatter:    c.StateOfMatter,
		Color:            c.Color,
		Density:          c.Density,
		Properties:       properties,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}, nil
}
