package chemicalres

import "chemezy-server/internal/domain/chemical"

// ChemicalResponse is the wire shape of one catalog entry.
type ChemicalResponse struct {
	ID               uint           `json:"id"`
	MolecularFormula string         `json:"molecular_formula"`
	CommonName       string         `json:"common_name"`
	StateOfMatter    string         `json:"state_of_matter"`
	Color            string         `json:"color"`
	Density          float64        `json:"density"`
	Properties       map[string]any `json:"properties,omitempty"`
}

func NewChemicalResponse(c *chemical.Chemical) *ChemicalResponse {
	if c == nil {
		return nil
	}
	return &ChemicalResponse{
		ID:               c.ID,
		MolecularFormula: c.MolecularFormula,
		CommonName:       c.CommonName,
		StateOfMatter:    c.StateOfMatter,
		Color:            c.Color,
		Density:          c.Density,
		Properties:       c.Properties,
	}
}
