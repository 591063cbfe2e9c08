package reactionreq

// ReactantRef names one catalogued chemical and how much of it is mixed in.
type ReactantRef struct {
	ChemicalID uint    `json:"chemical_id" binding:"required"`
	Quantity   float64 `json:"quantity"`
}

// ReactRequest is the body of POST /v1/reactions/react.
type ReactRequest struct {
	Reactants   []ReactantRef `json:"reactants" binding:"required,min=1,dive"`
	Environment string        `json:"environment"`
	CatalystID  *uint         `json:"catalyst_id"`
}
