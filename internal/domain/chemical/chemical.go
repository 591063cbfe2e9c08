package chemical

import (
	"context"
	"time"
)

// Chemical is a catalogued substance. Rows are created lazily: either seeded
// at startup, generated on first lookup, or created as a placeholder when a
// reaction prediction names a previously unseen product formula.
type Chemical struct {
	ID               uint
	MolecularFormula string
	CommonName       string
	StateOfMatter    string
	Color            string
	Density          float64
	Properties       map[string]any
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GeneratedProperties is the schema the properties generator must satisfy.
// Like reaction predictions, generator output is untrusted until validated.
type GeneratedProperties struct {
	CommonName    string         `json:"common_name" validate:"required"`
	StateOfMatter string         `json:"state_of_matter" validate:"oneof=solid liquid gas plasma aqueous"`
	Color         string         `json:"color" validate:"required"`
	Density       float64        `json:"density" validate:"gt=0"`
	Properties    map[string]any `json:"properties"`
}

// PropertiesGenerator describes a chemical from its molecular formula.
// A nil generator is a valid runtime state meaning no backend is configured.
type PropertiesGenerator interface {
	DescribeChemical(ctx context.Context, formula string) (*GeneratedProperties, error)
}

// Repository is the persistence boundary for chemicals.
type Repository interface {
	// FindByID returns nil, nil when no chemical exists.
	FindByID(ctx context.Context, id uint) (*Chemical, error)
	// FindByFormula returns nil, nil when no chemical exists.
	FindByFormula(ctx context.Context, formula string) (*Chemical, error)
	// Create inserts a new chemical and surfaces duplicate formulas as a
	// platformerrors Conflict.
	Create(ctx context.Context, chem *Chemical) error
	// List returns the catalog ordered by molecular formula.
	List(ctx context.Context) ([]Chemical, error)
	Count(ctx context.Context) (int64, error)
}
