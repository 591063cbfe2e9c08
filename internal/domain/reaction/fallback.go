package reaction

import (
	"fmt"
	"strings"
)

// FallbackPredictor produces deterministic, rule-based predictions without
// any external service. It is used when no reasoning backend is configured
// and when the backend fails after exhausting its retry budget. It never
// fails and never returns an empty product or effect list.
type FallbackPredictor struct{}

func NewFallbackPredictor() *FallbackPredictor {
	return &FallbackPredictor{}
}

var metalTokens = []string{"NA", "K", "LI", "CA", "MG", "FE", "ZN", "AL"}

var halideTokens = []string{"CL", "BR", "F", "I"}

// Predict selects a canned reaction archetype from coarse chemical signals
// in the reactant identifiers: metal-like tokens, hydroxide groups, halide
// groups and acid prefixes.
func (p *FallbackPredictor) Predict(reactants []string, environment Environment) *PredictionResult {
	normalized := make([]string, 0, len(reactants))
	for _, r := range reactants {
		normalized = append(normalized, strings.ToUpper(strings.TrimSpace(r)))
	}

	joined := strings.Join(reactants, ", ")

	switch {
	case containsWater(normalized) && containsAny(normalized, metalTokens):
		return p.metalWaterReaction(joined, environment)
	case containsAcid(normalized) && (containsHydroxide(normalized) || environment == EnvironmentBasic):
		return p.neutralization(joined, environment)
	case containsWater(normalized) && containsAny(normalized, halideTokens):
		return p.dissolution(normalized, joined, environment)
	default:
		return p.genericMixing(joined, environment)
	}
}

func (p *FallbackPredictor) metalWaterReaction(reactants string, environment Environment) *PredictionResult {
	return &PredictionResult{
		Products: []Product{
			{Formula: "H2", CommonName: "Hydrogen gas", Quantity: 1, IsSoluble: false},
			{Formula: "MOH", CommonName: "Metal hydroxide", Quantity: 1, IsSoluble: true},
		},
		Effects: []Effect{
			NewGasProductionEffect(GasProduction{GasType: "hydrogen", Color: "colorless", Intensity: 0.8, Duration: 5}),
			NewTemperatureChangeEffect(TemperatureChange{DeltaCelsius: 45}),
		},
		Explanation: fmt.Sprintf("Reactive metal meets water in %s: hydrogen gas evolves and the mixture heats as a hydroxide forms (%s).", environment, reactants),
	}
}

func (p *FallbackPredictor) neutralization(reactants string, environment Environment) *PredictionResult {
	return &PredictionResult{
		Products: []Product{
			{Formula: "H2O", CommonName: "Water", Quantity: 1, IsSoluble: true},
			{Formula: "SALT", CommonName: "Dissolved salt", Quantity: 1, IsSoluble: true},
		},
		Effects: []Effect{
			NewTemperatureChangeEffect(TemperatureChange{DeltaCelsius: 12}),
			NewVolumeChangeEffect(VolumeChange{Factor: 1.02}),
		},
		Explanation: fmt.Sprintf("Acid and base neutralize in %s, releasing heat and leaving water with a dissolved salt (%s).", environment, reactants),
	}
}

func (p *FallbackPredictor) dissolution(normalized []string, reactants string, environment Environment) *PredictionResult {
	solute := "solute"
	for _, r := range normalized {
		if r != "H2O" {
			solute = r
			break
		}
	}
	return &PredictionResult{
		Products: []Product{
			{Formula: solute, CommonName: "Aqueous solution", Quantity: 1, IsSoluble: true},
		},
		Effects: []Effect{
			NewStateChangeEffect(StateChange{ProductReference: solute, FinalState: "aqueous"}),
			NewTemperatureChangeEffect(TemperatureChange{DeltaCelsius: -2}),
		},
		Explanation: fmt.Sprintf("The salt dissolves in water under %s conditions with a slight endothermic dip (%s).", environment, reactants),
	}
}

func (p *FallbackPredictor) genericMixing(reactants string, environment Environment) *PredictionResult {
	return &PredictionResult{
		Products: []Product{
			{Formula: "MIX", CommonName: "Physical mixture", Quantity: 1, IsSoluble: false},
		},
		Effects: []Effect{
			NewTextureChangeEffect(TextureChange{ProductReference: "MIX", TextureType: "cloudy", Color: "gray", Viscosity: 0.5}),
		},
		Explanation: fmt.Sprintf("No strong reaction signal: the substances mix physically in %s without transforming (%s).", environment, reactants),
	}
}

func containsWater(normalized []string) bool {
	for _, r := range normalized {
		if r == "H2O" {
			return true
		}
	}
	return false
}

func containsHydroxide(normalized []string) bool {
	for _, r := range normalized {
		if r != "H2O" && strings.Contains(r, "OH") {
			return true
		}
	}
	return false
}

func containsAcid(normalized []string) bool {
	for _, r := range normalized {
		if r != "H2O" && r != "H2" && strings.HasPrefix(r, "H") {
			return true
		}
	}
	return false
}

func containsAny(normalized []string, tokens []string) bool {
	for _, r := range normalized {
		if r == "H2O" {
			continue
		}
		for _, token := range tokens {
			if strings.Contains(r, token) {
				return true
			}
		}
	}
	return false
}
